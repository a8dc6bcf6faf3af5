package fleet

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/de-tools/fleet-atlas/pkg/models/store"
)

type mockVehicleStore struct {
	mock.Mock
}

func (m *mockVehicleStore) List(ctx context.Context, userID int64) ([]store.Vehicle, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]store.Vehicle), args.Error(1)
}

func (m *mockVehicleStore) Get(ctx context.Context, id int64) (*store.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Vehicle), args.Error(1)
}

func (m *mockVehicleStore) Create(ctx context.Context, v store.Vehicle) (*store.Vehicle, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Vehicle), args.Error(1)
}

func (m *mockVehicleStore) Update(ctx context.Context, id int64, patch store.VehiclePatch) (*store.Vehicle, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Vehicle), args.Error(1)
}

type mockIntegrationStore struct {
	mock.Mock
}

func (m *mockIntegrationStore) ListServices(ctx context.Context, category *string) ([]store.IntegrationService, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]store.IntegrationService), args.Error(1)
}

func (m *mockIntegrationStore) GetService(ctx context.Context, id int64) (*store.IntegrationService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.IntegrationService), args.Error(1)
}

func (m *mockIntegrationStore) UpsertService(ctx context.Context, s store.IntegrationService) (*store.IntegrationService, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.IntegrationService), args.Error(1)
}

func (m *mockIntegrationStore) ListByUser(ctx context.Context, userID int64) ([]store.FleetIntegration, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]store.FleetIntegration), args.Error(1)
}

func (m *mockIntegrationStore) Get(ctx context.Context, id int64) (*store.FleetIntegration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FleetIntegration), args.Error(1)
}

func (m *mockIntegrationStore) Create(ctx context.Context, i store.FleetIntegration) (*store.FleetIntegration, error) {
	args := m.Called(ctx, i)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FleetIntegration), args.Error(1)
}

func (m *mockIntegrationStore) UpdateStatus(ctx context.Context, id int64, status string) (*store.FleetIntegration, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FleetIntegration), args.Error(1)
}
