package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/session"
)

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError translates the domain error taxonomy into HTTP status codes.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if vErr, ok := domain.AsValidation(err); ok {
		fields := make([]api.FieldError, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			fields = append(fields, api.FieldError{Field: f.Field, Message: f.Message})
		}
		WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: "validation failed", Fields: fields})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		WriteJSON(w, r, http.StatusNotFound, api.Error{Error: err.Error()})
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	WriteJSON(w, r, http.StatusInternalServerError, api.Error{Error: "internal server error"})
}

// IDParam reads a positive integer URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

func UserID(r *http.Request) (int64, error) {
	id, ok := session.UserID(r.Context())
	if !ok {
		return 0, domain.NewValidationError(session.Header, "must be a positive integer")
	}
	return id, nil
}
