package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
}

type Vehicle struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	Name             string    `db:"name"`
	VIN              string    `db:"vin"`
	Make             string    `db:"make"`
	Model            string    `db:"model"`
	Year             int       `db:"year"`
	DriverScore      float64   `db:"driver_score"`
	MaintenanceScore float64   `db:"maintenance_score"`
	OverallScore     float64   `db:"overall_score"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type IntegrationService struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	LogoURL     string    `db:"logo_url"`
	APIEndpoint string    `db:"api_endpoint"`
	CreatedAt   time.Time `db:"created_at"`
}

// FleetIntegration is a fleet_integrations row joined with its integration_services row.
type FleetIntegration struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	ServiceID   int64     `db:"service_id"`
	Status      string    `db:"status"`
	Credentials []byte    `db:"credentials"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	ServiceName        sql.NullString `db:"service_name"`
	ServiceCategory    sql.NullString `db:"service_category"`
	ServiceDescription sql.NullString `db:"service_description"`
	ServiceLogoURL     sql.NullString `db:"service_logo_url"`
	ServiceAPIEndpoint sql.NullString `db:"service_api_endpoint"`
}

// VehiclePatch holds the columns of a partial vehicle update. Nil columns keep their value.
type VehiclePatch struct {
	Name             *string
	Make             *string
	Model            *string
	Year             *int
	DriverScore      *float64
	MaintenanceScore *float64
	OverallScore     *float64
	Status           *string
}
