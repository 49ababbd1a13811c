package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/service"
)

type JobHandler struct {
	analyzer *service.JobAnalyzerService
}

func NewJobHandler(analyzer *service.JobAnalyzerService) *JobHandler {
	return &JobHandler{analyzer: analyzer}
}

// Analyze extracts structured requirements from a posted job description.
func (h *JobHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var job domain.JobDescription
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), &job)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
