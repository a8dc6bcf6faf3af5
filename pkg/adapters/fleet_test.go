package adapters

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
)

func TestMapStoreIntegrationToDomain(t *testing.T) {
	tests := []struct {
		name        string
		credentials []byte
		want        string
	}{
		{
			name:        "string values",
			credentials: []byte(`{"api_key":"secret"}`),
			want:        `{"api_key":"secret"}`,
		},
		{
			name:        "non-string values are kept",
			credentials: []byte(`{"account":42,"sandbox":true,"scopes":["read"]}`),
			want:        `{"account":42,"sandbox":true,"scopes":["read"]}`,
		},
		{
			name: "empty column",
			want: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapStoreIntegrationToDomain(store.FleetIntegration{
				ID:          3,
				UserID:      1,
				ServiceID:   2,
				Status:      "pending",
				Credentials: tt.credentials,
			})
			assert.Equal(t, domain.IntegrationPending, got.Status)
			assert.JSONEq(t, tt.want, string(got.Credentials))
			assert.Nil(t, got.Service)
		})
	}

	t.Run("does not alias the row buffer", func(t *testing.T) {
		row := store.FleetIntegration{
			Credentials: []byte(`{"k":"v"}`),
			ServiceName: sql.NullString{String: "Geotab", Valid: true},
		}
		got := MapStoreIntegrationToDomain(row)
		row.Credentials[2] = 'x'

		assert.JSONEq(t, `{"k":"v"}`, string(got.Credentials))
		require.NotNil(t, got.Service)
		assert.Equal(t, "Geotab", got.Service.Name)
	})
}
