package fleet

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/vehicles"
)

type VehicleService interface {
	List(ctx context.Context, userID int64) ([]domain.Vehicle, error)
	Get(ctx context.Context, id int64) (domain.Vehicle, error)
	Update(ctx context.Context, id int64, update domain.VehicleUpdate) (domain.Vehicle, error)
}

type vehicleService struct {
	store vehicles.Store
}

func NewVehicleService(store vehicles.Store) (VehicleService, error) {
	if store == nil {
		return nil, fmt.Errorf("vehicle store is nil")
	}
	return &vehicleService{store: store}, nil
}

func (s *vehicleService) List(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	rows, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Vehicle, 0, len(rows))
	for _, v := range rows {
		res = append(res, adapters.MapStoreVehicleToDomain(v))
	}
	return res, nil
}

func (s *vehicleService) Get(ctx context.Context, id int64) (domain.Vehicle, error) {
	v, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	return adapters.MapStoreVehicleToDomain(*v), nil
}

func (s *vehicleService) Update(ctx context.Context, id int64, update domain.VehicleUpdate) (domain.Vehicle, error) {
	if err := update.Validate(); err != nil {
		return domain.Vehicle{}, err
	}

	v, err := s.store.Update(ctx, id, adapters.MapVehicleUpdateDomainToStore(update))
	if err != nil {
		return domain.Vehicle{}, err
	}

	zerolog.Ctx(ctx).Debug().Int64("vehicle_id", id).Msg("vehicle updated")
	return adapters.MapStoreVehicleToDomain(*v), nil
}
