package scoring

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/handlers/response"
	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/services/scoring"
)

type Handler struct {
	catalog scoring.Catalog
}

func NewHandler(catalog scoring.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	models := h.catalog.Models(ctx)

	res := make([]api.ScoringModel, 0, len(models))
	for _, m := range models {
		res = append(res, adapters.MapScoringModelDomainToApi(m, scoring.GroupByBand(m.Events)))
	}
	response.WriteJSON(w, r, http.StatusOK, res)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	goal, err := domain.ParseGoalType(chi.URLParam(r, "goal"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	model, err := h.catalog.Model(ctx, goal)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	bands, err := h.catalog.Bands(ctx, goal)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapScoringModelDomainToApi(model, bands))
}
