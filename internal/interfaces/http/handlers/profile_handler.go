package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
)

// ProfileHandler serves the risk profile management endpoints.
type ProfileHandler struct {
	profiles profile.Service
	logger   logging.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles profile.Service, log logging.Logger) *ProfileHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ProfileHandler{profiles: profiles, logger: log.Named("profile_handler")}
}

// List handles GET /profiles.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if profiles == nil {
		profiles = []*profile.RiskProfile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Get handles GET /profiles/{profileID}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p profile.RiskProfile
	if err := decodeJSON(r, &p); err != nil {
		writeAppError(w, err)
		return
	}
	created, err := h.profiles.Create(r.Context(), &p)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /profiles/{profileID}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p profile.RiskProfile
	if err := decodeJSON(r, &p); err != nil {
		writeAppError(w, err)
		return
	}
	p.ID = chi.URLParam(r, "profileID")
	updated, err := h.profiles.Update(r.Context(), &p)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /profiles/{profileID}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Delete(r.Context(), chi.URLParam(r, "profileID")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDefault handles PUT /profiles/{profileID}/default.
func (h *ProfileHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if err := h.profiles.SetDefault(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"default_profile_id": id})
}
