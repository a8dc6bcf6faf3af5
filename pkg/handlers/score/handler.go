package score

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/handlers/response"
	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
)

var improvementSchema = response.MustSchema(`{
	"type": "object",
	"properties": {
		"delta": {"type": "number", "minimum": 0}
	},
	"required": ["delta"],
	"additionalProperties": false
}`)

type Handler struct {
	aggregator score.Aggregator
}

func NewHandler(aggregator score.Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (h *Handler) GetScore(w http.ResponseWriter, r *http.Request) {
	userID, goal, err := scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	value, err := h.aggregator.GetScore(r.Context(), userID, goal)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, api.Score{Score: value})
}

func (h *Handler) RecordImprovement(w http.ResponseWriter, r *http.Request) {
	userID, goal, err := scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req api.ImprovementRequest
	if err := response.DecodeBody(r, improvementSchema, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	record, err := h.aggregator.RecordImprovement(r.Context(), userID, goal, req.Delta)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusCreated, api.Score{Score: record.Score})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, goal, err := scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	limit := score.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.WriteError(w, r, domain.NewValidationError("limit", "must be a positive integer"))
			return
		}
	}

	history, err := h.aggregator.History(r.Context(), userID, goal, limit)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapScoreHistoryDomainToApi(history))
}

func scope(r *http.Request) (int64, domain.GoalType, error) {
	userID, err := response.UserID(r)
	if err != nil {
		return 0, "", err
	}
	goal, err := domain.ParseGoalType(chi.URLParam(r, "goal"))
	if err != nil {
		return 0, "", err
	}
	return userID, goal, nil
}
