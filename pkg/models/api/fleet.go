package api

import "time"

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Vehicle struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	Name             string    `json:"name"`
	VIN              string    `json:"vin"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	Year             int       `json:"year"`
	DriverScore      float64   `json:"driverScore"`
	MaintenanceScore float64   `json:"maintenanceScore"`
	OverallScore     float64   `json:"overallScore"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type VehicleUpdateRequest struct {
	Name             *string  `json:"name,omitempty"`
	Make             *string  `json:"make,omitempty"`
	Model            *string  `json:"model,omitempty"`
	Year             *int     `json:"year,omitempty"`
	DriverScore      *float64 `json:"driverScore,omitempty"`
	MaintenanceScore *float64 `json:"maintenanceScore,omitempty"`
	OverallScore     *float64 `json:"overallScore,omitempty"`
	Status           *string  `json:"status,omitempty"`
}

type IntegrationService struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logoUrl"`
	APIEndpoint string    `json:"apiEndpoint"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FleetIntegration never echoes credentials back to the client.
type FleetIntegration struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"userId"`
	ServiceID int64               `json:"serviceId"`
	Status    string              `json:"status"`
	Service   *IntegrationService `json:"service,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type ConnectIntegrationRequest struct {
	ServiceID   int64             `json:"serviceId"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

type SetIntegrationStatusRequest struct {
	Status string `json:"status"`
}
