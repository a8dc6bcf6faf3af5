package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

var testSchema = MustSchema(`{
	"type": "object",
	"properties": {
		"delta": {"type": "number", "minimum": 0},
		"note": {"type": "string"}
	},
	"required": ["delta"],
	"additionalProperties": false
}`)

type payload struct {
	Delta float64 `json:"delta"`
	Note  string  `json:"note"`
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   api.Error
	}{
		{
			name:       "validation",
			err:        &domain.ValidationError{Fields: []domain.FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}},
			wantStatus: http.StatusBadRequest,
			wantBody: api.Error{Error: "validation failed", Fields: []api.FieldError{
				{Field: "a", Message: "bad"},
				{Field: "b", Message: "worse"},
			}},
		},
		{
			name:       "not found",
			err:        domain.NotFound("vehicle", 4),
			wantStatus: http.StatusNotFound,
			wantBody:   api.Error{Error: "vehicle 4: not found"},
		},
		{
			name:       "transport",
			err:        &domain.TransportError{Op: "get vehicle", Err: errors.New("dial tcp: refused")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   api.Error{Error: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			WriteError(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body api.Error
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		want       payload
		wantFields []string
	}{
		{name: "valid", body: `{"delta": 0.5, "note": "x"}`, want: payload{Delta: 0.5, Note: "x"}},
		{name: "empty", body: ``, wantFields: []string{"body"}},
		{name: "malformed", body: `{"delta":`, wantFields: []string{"body"}},
		{name: "missing required", body: `{"note": "x"}`, wantFields: []string{"delta"}},
		{name: "several problems", body: `{"delta": -1, "note": 3}`, wantFields: []string{"delta", "note"}},
		{name: "unknown property", body: `{"delta": 1, "extra": true}`, wantFields: []string{"extra"}},
		{name: "not an object", body: `[1, 2]`, wantFields: []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var got payload
			err := DecodeBody(req, testSchema, &got)
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			vErr, ok := domain.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			var fields []string
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "12", want: 12},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.value)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			id, err := IDParam(req, "id")
			if tt.wantErr {
				_, ok := domain.AsValidation(err)
				assert.True(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
