package recommendation

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/handlers/response"
	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/services/recommendation"
)

var (
	setStatusSchema = response.MustSchema(`{
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["notified", "risk_accepted", "in_progress", "completed"]}
		},
		"required": ["status"],
		"additionalProperties": false
	}`)

	setStepCompletionSchema = response.MustSchema(`{
		"type": "object",
		"properties": {
			"isCompleted": {"type": "boolean"}
		},
		"required": ["isCompleted"],
		"additionalProperties": false
	}`)
)

type Handler struct {
	recommendations recommendation.Service
}

func NewHandler(recommendations recommendation.Service) *Handler {
	return &Handler{recommendations: recommendations}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := response.UserID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	filter := domain.RecommendationFilter{UserID: userID}
	if raw := r.URL.Query().Get("goal"); raw != "" {
		goal, err := domain.ParseGoalType(raw)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}
		filter.Goal = &goal
	}

	recs, err := h.recommendations.List(ctx, filter)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapRecommendationsDomainToApi(recs))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	rec, err := h.recommendations.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapRecommendationDomainToApi(rec))
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req api.SetStatusRequest
	if err := response.DecodeBody(r, setStatusSchema, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	rec, err := h.recommendations.SetStatus(ctx, id, domain.RecommendationStatus(req.Status))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapRecommendationDomainToApi(rec))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	result, err := h.recommendations.MarkComplete(ctx, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if result.Score != nil {
		zerolog.Ctx(ctx).Debug().
			Int64("recommendation_id", id).
			Float64("score", result.Score.Score).
			Msg("recommendation completed")
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapCompletionDomainToApi(result))
}

func (h *Handler) SuggestedStatus(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	suggestion, err := h.recommendations.SuggestStatus(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapSuggestionDomainToApi(suggestion))
}

func (h *Handler) Steps(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	steps, err := h.recommendations.ListSteps(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapStepsDomainToApi(steps))
}

func (h *Handler) SetStepCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req api.SetStepCompletionRequest
	if err := response.DecodeBody(r, setStepCompletionSchema, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	step, err := h.recommendations.SetStepCompletion(r.Context(), id, req.IsCompleted)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapStepDomainToApi(step))
}

func (h *Handler) ToggleStep(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	step, err := h.recommendations.ToggleStep(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapStepDomainToApi(step))
}
