package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/store"
)

type ProfileHandler struct {
	profiles domain.ProfileStore
}

func NewProfileHandler(profiles domain.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileRequest struct {
	FullName          string   `json:"full_name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone,omitempty"`
	Location          string   `json:"location,omitempty"`
	LinkedInURL       string   `json:"linkedin_url,omitempty"`
	GitHubURL         string   `json:"github_url,omitempty"`
	PortfolioURL      string   `json:"portfolio_url,omitempty"`
	CurrentTitle      string   `json:"current_title,omitempty"`
	YearsOfExperience int      `json:"years_of_experience,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	PreferredRoles    []string `json:"preferred_roles,omitempty"`
	WorkAuthorization string   `json:"work_authorization,omitempty"`
}

func (req *profileRequest) apply(p *domain.Profile) {
	p.FullName = req.FullName
	p.Email = req.Email
	p.Phone = req.Phone
	p.Location = req.Location
	p.LinkedInURL = req.LinkedInURL
	p.GitHubURL = req.GitHubURL
	p.PortfolioURL = req.PortfolioURL
	p.CurrentTitle = req.CurrentTitle
	p.YearsOfExperience = req.YearsOfExperience
	p.Skills = req.Skills
	p.PreferredRoles = req.PreferredRoles
	p.WorkAuthorization = req.WorkAuthorization
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "full_name and email are required")
		return
	}

	profile := &domain.Profile{}
	req.apply(profile)

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "full_name and email are required")
		return
	}

	profile := &domain.Profile{ID: id}
	req.apply(profile)

	if err := h.profiles.Update(r.Context(), profile); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	if err := h.profiles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}
