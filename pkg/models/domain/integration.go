package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type IntegrationStatus string

const (
	IntegrationPending   IntegrationStatus = "pending"
	IntegrationConnected IntegrationStatus = "connected"
	IntegrationError     IntegrationStatus = "error"
)

// ParseIntegrationStatus accepts "active" as an alias of connected.
func ParseIntegrationStatus(s string) (IntegrationStatus, error) {
	switch strings.ToLower(s) {
	case "pending":
		return IntegrationPending, nil
	case "connected", "active":
		return IntegrationConnected, nil
	case "error":
		return IntegrationError, nil
	default:
		return "", NewValidationError("status", "must be one of pending, connected, error")
	}
}

type IntegrationService struct {
	ID          int64
	Name        string
	Category    string
	Description string
	LogoURL     string
	APIEndpoint string
	CreatedAt   time.Time
}

type FleetIntegration struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	Status      IntegrationStatus
	Credentials json.RawMessage
	Service     *IntegrationService
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
