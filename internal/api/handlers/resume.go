package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/service"
)

type ResumeHandler struct {
	tailor   *service.ResumeTailorService
	analyzer *service.JobAnalyzerService
}

func NewResumeHandler(tailor *service.ResumeTailorService, analyzer *service.JobAnalyzerService) *ResumeHandler {
	return &ResumeHandler{tailor: tailor, analyzer: analyzer}
}

type tailorResumeRequest struct {
	ResumeText string                `json:"resume_text"`
	Job        domain.JobDescription `json:"job"`
	FocusAreas []string              `json:"focus_areas,omitempty"`
}

// Tailor rewrites a resume toward a job posting and returns a diff preview.
func (h *ResumeHandler) Tailor(w http.ResponseWriter, r *http.Request) {
	var req tailorResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResumeText == "" {
		writeError(w, http.StatusBadRequest, "resume_text is required")
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), &req.Job)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tailored, err := h.tailor.Tailor(r.Context(), req.ResumeText, analysis, req.FocusAreas)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tailored)
}
