package fleet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/integrations"
)

type IntegrationService interface {
	ListServices(ctx context.Context, category *string) ([]domain.IntegrationService, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.FleetIntegration, error)
	Connect(ctx context.Context, userID, serviceID int64, credentials map[string]string) (domain.FleetIntegration, error)
	SetStatus(ctx context.Context, id int64, status string) (domain.FleetIntegration, error)
}

type integrationService struct {
	store integrations.Store
}

func NewIntegrationService(store integrations.Store) (IntegrationService, error) {
	if store == nil {
		return nil, fmt.Errorf("integration store is nil")
	}
	return &integrationService{store: store}, nil
}

func (s *integrationService) ListServices(ctx context.Context, category *string) ([]domain.IntegrationService, error) {
	rows, err := s.store.ListServices(ctx, category)
	if err != nil {
		return nil, err
	}
	res := make([]domain.IntegrationService, 0, len(rows))
	for _, svc := range rows {
		res = append(res, adapters.MapStoreIntegrationServiceToDomain(svc))
	}
	return res, nil
}

func (s *integrationService) ListForUser(ctx context.Context, userID int64) ([]domain.FleetIntegration, error) {
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.FleetIntegration, 0, len(rows))
	for _, i := range rows {
		res = append(res, adapters.MapStoreIntegrationToDomain(i))
	}
	return res, nil
}

// Connect records a pending integration. Credentials are stored as an opaque JSON object.
func (s *integrationService) Connect(
	ctx context.Context,
	userID, serviceID int64,
	credentials map[string]string,
) (domain.FleetIntegration, error) {
	if serviceID <= 0 {
		return domain.FleetIntegration{}, domain.NewValidationError("serviceId", "must be a positive integer")
	}
	if _, err := s.store.GetService(ctx, serviceID); err != nil {
		if domain.IsNotFound(err) {
			return domain.FleetIntegration{}, domain.NewValidationError("serviceId", "unknown integration service")
		}
		return domain.FleetIntegration{}, err
	}

	if credentials == nil {
		credentials = map[string]string{}
	}
	payload, err := json.Marshal(credentials)
	if err != nil {
		return domain.FleetIntegration{}, fmt.Errorf("marshal credentials: %w", err)
	}

	created, err := s.store.Create(ctx, store.FleetIntegration{
		UserID:      userID,
		ServiceID:   serviceID,
		Status:      string(domain.IntegrationPending),
		Credentials: payload,
	})
	if err != nil {
		return domain.FleetIntegration{}, err
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", userID).Int64("service_id", serviceID).Msg("integration connected")
	return adapters.MapStoreIntegrationToDomain(*created), nil
}

// SetStatus only updates existing records; an unknown id is not found.
func (s *integrationService) SetStatus(ctx context.Context, id int64, status string) (domain.FleetIntegration, error) {
	parsed, err := domain.ParseIntegrationStatus(status)
	if err != nil {
		return domain.FleetIntegration{}, err
	}

	updated, err := s.store.UpdateStatus(ctx, id, string(parsed))
	if err != nil {
		return domain.FleetIntegration{}, err
	}
	return adapters.MapStoreIntegrationToDomain(*updated), nil
}
