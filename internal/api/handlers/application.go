package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/service"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
	profiles     domain.ProfileStore
}

func NewApplicationHandler(applications *service.ApplicationService, profiles domain.ProfileStore) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, profiles: profiles}
}

type fillApplicationRequest struct {
	ProfileID  string                `json:"profile_id"`
	Job        domain.JobDescription `json:"job"`
	Fields     []domain.FormField    `json:"fields"`
	ResumeText string                `json:"resume_text,omitempty"`
}

// Fill composes an answer for every field of an application form and returns
// the result for human review.
func (h *ApplicationHandler) Fill(w http.ResponseWriter, r *http.Request) {
	var req fillApplicationRequest
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

	review, err := h.applications.Fill(r.Context(), &req.Job, req.Fields, profile, req.ResumeText)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// History lists past applications for a profile.
func (h *ApplicationHandler) History(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	logs, err := h.applications.History(r.Context(), profileID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if logs == nil {
		logs = []domain.ApplicationLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
