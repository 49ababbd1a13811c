package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/service"
)

type AnswerHandler struct {
	aggregator *service.EvidenceAggregator
	composer   *service.AnswerComposer
	guardrails *service.GuardrailsService
	knowledge  *service.KnowledgeService
	profiles   domain.ProfileStore
}

func NewAnswerHandler(aggregator *service.EvidenceAggregator, composer *service.AnswerComposer, guardrails *service.GuardrailsService, knowledge *service.KnowledgeService, profiles domain.ProfileStore) *AnswerHandler {
	return &AnswerHandler{
		aggregator: aggregator,
		composer:   composer,
		guardrails: guardrails,
		knowledge:  knowledge,
		profiles:   profiles,
	}
}

type composeAnswerRequest struct {
	ProfileID    string `json:"profile_id"`
	Question     string `json:"question"`
	FieldID      string `json:"field_id,omitempty"`
	FieldType    string `json:"field_type,omitempty"`
	DocumentText string `json:"document_text,omitempty"`
}

type composeAnswerResponse struct {
	*domain.ComposedAnswer
	ConfidenceReason string                  `json:"confidence_reason"`
	Validation       domain.ValidationResult `json:"validation"`
}

// Compose answers a single application question.
func (h *AnswerHandler) Compose(w http.ResponseWriter, r *http.Request) {
	var req composeAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile_id")
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), profileID)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	question := domain.Question{
		Text:      req.Question,
		FieldID:   req.FieldID,
		FieldType: domain.FieldType(req.FieldType),
	}

	sources := h.aggregator.Gather(r.Context(), question.Text, profile, req.DocumentText)
	answer, err := h.composer.Compose(r.Context(), question, sources, profile)
	if err != nil {
		if errors.Is(err, service.ErrQuestionEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compose answer")
		return
	}

	resp := composeAnswerResponse{
		ComposedAnswer:   answer,
		ConfidenceReason: domain.ConfidenceReason(answer.ConfidenceScore),
		Validation:       h.guardrails.ValidateAnswer(answer),
	}
	writeJSON(w, http.StatusOK, resp)
}

type approveAnswerRequest struct {
	ProfileID string                `json:"profile_id"`
	Answer    domain.ComposedAnswer `json:"answer"`
	Metadata  map[string]any        `json:"metadata,omitempty"`
}

// Approve records a user-approved answer so history search can reuse it.
func (h *AnswerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile_id")
		return
	}
	if req.Answer.Question == "" || req.Answer.Text == "" {
		writeError(w, http.StatusBadRequest, "answer question and text are required")
		return
	}

	if err := h.knowledge.StoreApproved(r.Context(), profileID, &req.Answer, req.Metadata); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store approved answer")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "stored"})
}
