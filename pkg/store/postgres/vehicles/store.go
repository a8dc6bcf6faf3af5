package vehicles

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/fleet-atlas/pkg/models/store"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

const columns = `id, user_id, name, vin, make, model, year, driver_score, maintenance_score,
	overall_score, status, created_at, updated_at`

type Store interface {
	List(ctx context.Context, userID int64) ([]store.Vehicle, error)
	Get(ctx context.Context, id int64) (*store.Vehicle, error)
	Create(ctx context.Context, vehicle store.Vehicle) (*store.Vehicle, error)
	Update(ctx context.Context, id int64, patch store.VehiclePatch) (*store.Vehicle, error)
}

type vehicleStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &vehicleStore{db: db}, nil
}

func (s *vehicleStore) List(ctx context.Context, userID int64) ([]store.Vehicle, error) {
	vehicles := []store.Vehicle{}
	query := `SELECT ` + columns + ` FROM vehicles WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	if err := sqlx.SelectContext(ctx, postgres.Querier(ctx, s.db), &vehicles, query, userID); err != nil {
		return nil, postgres.WrapError("list vehicles", err, "user", userID)
	}
	return vehicles, nil
}

func (s *vehicleStore) Get(ctx context.Context, id int64) (*store.Vehicle, error) {
	var vehicle store.Vehicle
	query := `SELECT ` + columns + ` FROM vehicles WHERE id = $1`
	if err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &vehicle, query, id); err != nil {
		return nil, postgres.WrapError("get vehicle", err, "vehicle", id)
	}
	return &vehicle, nil
}

func (s *vehicleStore) Create(ctx context.Context, v store.Vehicle) (*store.Vehicle, error) {
	var created store.Vehicle
	query := `
		INSERT INTO vehicles (user_id, name, vin, make, model, year, driver_score,
			maintenance_score, overall_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &created, query,
		v.UserID, v.Name, v.VIN, v.Make, v.Model, v.Year,
		v.DriverScore, v.MaintenanceScore, v.OverallScore, v.Status,
	)
	if err != nil {
		return nil, postgres.WrapError("create vehicle", err, "vehicle", 0)
	}
	return &created, nil
}

func (s *vehicleStore) Update(ctx context.Context, id int64, p store.VehiclePatch) (*store.Vehicle, error) {
	var updated store.Vehicle
	query := `
		UPDATE vehicles SET
			name = COALESCE($2, name),
			make = COALESCE($3, make),
			model = COALESCE($4, model),
			year = COALESCE($5, year),
			driver_score = COALESCE($6, driver_score),
			maintenance_score = COALESCE($7, maintenance_score),
			overall_score = COALESCE($8, overall_score),
			status = COALESCE($9, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, postgres.Querier(ctx, s.db), &updated, query,
		id, p.Name, p.Make, p.Model, p.Year,
		p.DriverScore, p.MaintenanceScore, p.OverallScore, p.Status,
	)
	if err != nil {
		return nil, postgres.WrapError("update vehicle", err, "vehicle", id)
	}
	return &updated, nil
}
