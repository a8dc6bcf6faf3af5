package integrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

const serviceColumns = `id, name, category, description, logo_url, api_endpoint, created_at`

const integrationColumns = `
	fi.id, fi.user_id, fi.service_id, fi.status, fi.credentials, fi.created_at, fi.updated_at,
	s.name AS service_name, s.category AS service_category, s.description AS service_description,
	s.logo_url AS service_logo_url, s.api_endpoint AS service_api_endpoint`

type Store interface {
	ListServices(ctx context.Context, category *string) ([]store.IntegrationService, error)
	GetService(ctx context.Context, id int64) (*store.IntegrationService, error)
	UpsertService(ctx context.Context, service store.IntegrationService) (*store.IntegrationService, error)

	ListByUser(ctx context.Context, userID int64) ([]store.FleetIntegration, error)
	Get(ctx context.Context, id int64) (*store.FleetIntegration, error)
	Create(ctx context.Context, integration store.FleetIntegration) (*store.FleetIntegration, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*store.FleetIntegration, error)
}

type integrationStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &integrationStore{db: db}, nil
}

// ListServices returns the catalog ordered by name, optionally narrowed to one category.
func (s *integrationStore) ListServices(ctx context.Context, category *string) ([]store.IntegrationService, error) {
	services := []store.IntegrationService{}
	query := `SELECT ` + serviceColumns + ` FROM integration_services`
	var args []interface{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}
	query += ` ORDER BY name ASC`

	if err := sqlx.SelectContext(ctx, postgres.Querier(ctx, s.db), &services, query, args...); err != nil {
		return nil, postgres.WrapError("list integration services", err, "integration service", 0)
	}
	return services, nil
}

func (s *integrationStore) GetService(ctx context.Context, id int64) (*store.IntegrationService, error) {
	var service store.IntegrationService
	query := `SELECT ` + serviceColumns + ` FROM integration_services WHERE id = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &service, query, id); err != nil {
		return nil, postgres.WrapError("get integration service", err, "integration service", id)
	}
	return &service, nil
}

func (s *integrationStore) UpsertService(ctx context.Context, svc store.IntegrationService) (*store.IntegrationService, error) {
	var saved store.IntegrationService
	query := `
		INSERT INTO integration_services (name, category, description, logo_url, api_endpoint)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			logo_url = EXCLUDED.logo_url,
			api_endpoint = EXCLUDED.api_endpoint
		RETURNING ` + serviceColumns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &saved, query,
		svc.Name, svc.Category, svc.Description, svc.LogoURL, svc.APIEndpoint)
	if err != nil {
		return nil, postgres.WrapError("upsert integration service", err, "integration service", 0)
	}
	return &saved, nil
}

func (s *integrationStore) ListByUser(ctx context.Context, userID int64) ([]store.FleetIntegration, error) {
	integrations := []store.FleetIntegration{}
	query := `
		SELECT ` + integrationColumns + `
		FROM fleet_integrations fi
		LEFT JOIN integration_services s ON s.id = fi.service_id
		WHERE fi.user_id = $1
		ORDER BY fi.created_at DESC, fi.id DESC`
	if err := sqlx.SelectContext(ctx, postgres.Querier(ctx, s.db), &integrations, query, userID); err != nil {
		return nil, postgres.WrapError("list integrations", err, "user", userID)
	}
	return integrations, nil
}

func (s *integrationStore) Get(ctx context.Context, id int64) (*store.FleetIntegration, error) {
	var integration store.FleetIntegration
	query := `
		SELECT ` + integrationColumns + `
		FROM fleet_integrations fi
		LEFT JOIN integration_services s ON s.id = fi.service_id
		WHERE fi.id = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &integration, query, id); err != nil {
		return nil, postgres.WrapError("get integration", err, "integration", id)
	}
	return &integration, nil
}

func (s *integrationStore) Create(ctx context.Context, i store.FleetIntegration) (*store.FleetIntegration, error) {
	credentials := "{}"
	if len(i.Credentials) > 0 {
		credentials = string(i.Credentials)
	}

	var created store.FleetIntegration
	query := `
		WITH fi AS (
			INSERT INTO fleet_integrations (user_id, service_id, status, credentials)
			VALUES ($1, $2, $3, $4::jsonb)
			RETURNING *
		)
		SELECT ` + integrationColumns + `
		FROM fi
		LEFT JOIN integration_services s ON s.id = fi.service_id`
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &created, query,
		i.UserID, i.ServiceID, i.Status, credentials)
	if err != nil {
		return nil, postgres.WrapError("create integration", err, "integration", 0)
	}
	return &created, nil
}

// UpdateStatus never creates a record: an unknown id is reported as not found.
func (s *integrationStore) UpdateStatus(ctx context.Context, id int64, status string) (*store.FleetIntegration, error) {
	var updated store.FleetIntegration
	query := `
		WITH fi AS (
			UPDATE fleet_integrations SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + integrationColumns + `
		FROM fi
		LEFT JOIN integration_services s ON s.id = fi.service_id`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &updated, query, id, status); err != nil {
		return nil, postgres.WrapError("update integration status", err, "integration", id)
	}
	return &updated, nil
}
