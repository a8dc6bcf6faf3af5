package domain

import "time"

type User struct {
	ID          int64
	Username    string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

type VehicleStatus string

const (
	VehicleGood           VehicleStatus = "Good"
	VehicleNeedsReview    VehicleStatus = "Needs Review"
	VehicleActionRequired VehicleStatus = "Action Required"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleGood, VehicleNeedsReview, VehicleActionRequired:
		return true
	default:
		return false
	}
}

type Vehicle struct {
	ID               int64
	UserID           int64
	Name             string
	VIN              string
	Make             string
	Model            string
	Year             int
	DriverScore      float64
	MaintenanceScore float64
	OverallScore     float64
	Status           VehicleStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VehicleUpdate carries a partial update; nil fields are left untouched.
type VehicleUpdate struct {
	Name             *string
	Make             *string
	Model            *string
	Year             *int
	DriverScore      *float64
	MaintenanceScore *float64
	OverallScore     *float64
	Status           *VehicleStatus
}

func (u VehicleUpdate) Empty() bool {
	return u.Name == nil && u.Make == nil && u.Model == nil && u.Year == nil &&
		u.DriverScore == nil && u.MaintenanceScore == nil && u.OverallScore == nil && u.Status == nil
}

func (u VehicleUpdate) Validate() error {
	vErr := &ValidationError{}
	checkScore := func(field string, v *float64) {
		if v != nil && (*v < MinScore || *v > MaxScore) {
			vErr.Add(field, "must be between 0 and 100")
		}
	}
	checkScore("driverScore", u.DriverScore)
	checkScore("maintenanceScore", u.MaintenanceScore)
	checkScore("overallScore", u.OverallScore)
	if u.Status != nil && !u.Status.Valid() {
		vErr.Add("status", "must be one of Good, Needs Review, Action Required")
	}
	if u.Year != nil && (*u.Year < 1900 || *u.Year > 2100) {
		vErr.Add("year", "must be between 1900 and 2100")
	}
	if u.Name != nil && *u.Name == "" {
		vErr.Add("name", "must not be empty")
	}
	if u.Empty() {
		vErr.Add("body", "at least one field must be provided")
	}
	return vErr.OrNil()
}
