package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenrisk/entity-screening/internal/application/screening"
	"github.com/lumenrisk/entity-screening/internal/domain/factor"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// ScreeningHandler serves the assessment and classification endpoints.
type ScreeningHandler struct {
	assessor screening.Service
	logger   logging.Logger
}

// NewScreeningHandler creates a ScreeningHandler.
func NewScreeningHandler(assessor screening.Service, log logging.Logger) *ScreeningHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ScreeningHandler{assessor: assessor, logger: log.Named("screening_handler")}
}

// Assess handles POST /assessments.
func (h *ScreeningHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req screening.AssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	result, err := h.assessor.Assess(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// classifyRequest is the body of POST /factors/classify.
type classifyRequest struct {
	FactorIDs []string `json:"factor_ids"`
}

// classifiedFactor is one classification result, including the resolution
// tier so callers can see whether an id was recognized or inferred.
type classifiedFactor struct {
	ID string `json:"id"`
	factor.Descriptor
	Tier factor.ResolutionTier `json:"tier"`
}

// classifyResponse groups classification results by display category.
type classifyResponse struct {
	Categories []classifiedCategory `json:"categories"`
	Factors    []classifiedFactor   `json:"factors"`
}

type classifiedCategory struct {
	Category    factor.Category  `json:"category"`
	MaxSeverity factor.Severity  `json:"max_severity"`
	Members     []factor.Grouped `json:"members"`
}

// Classify handles POST /factors/classify. It is a stateless helper: ids in,
// descriptors out, no profile or score involved.
func (h *ScreeningHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if len(req.FactorIDs) == 0 {
		writeAppError(w, errors.InvalidParam("factor_ids must not be empty"))
		return
	}

	resp := classifyResponse{
		Categories: []classifiedCategory{},
		Factors:    make([]classifiedFactor, 0, len(req.FactorIDs)),
	}
	for _, id := range req.FactorIDs {
		d, tier := factor.ClassifyWithTier(id)
		resp.Factors = append(resp.Factors, classifiedFactor{ID: id, Descriptor: d, Tier: tier})
	}

	groups := factor.Group(req.FactorIDs)
	for _, cat := range factor.SortedCategories(groups) {
		members := factor.SortMembers(groups[cat])
		resp.Categories = append(resp.Categories, classifiedCategory{
			Category:    cat,
			MaxSeverity: factor.MaxSeverity(members),
			Members:     members,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetFactor handles GET /factors/{factorID}.
func (h *ScreeningHandler) GetFactor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "factorID")
	if id == "" {
		writeAppError(w, errors.InvalidParam("factor id is required"))
		return
	}
	d, tier := factor.ClassifyWithTier(id)
	writeJSON(w, http.StatusOK, classifiedFactor{ID: id, Descriptor: d, Tier: tier})
}
