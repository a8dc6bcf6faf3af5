package domain

import "time"

type RecommendationStatus string

const (
	StatusNotified     RecommendationStatus = "notified"
	StatusRiskAccepted RecommendationStatus = "risk_accepted"
	StatusInProgress   RecommendationStatus = "in_progress"
	StatusCompleted    RecommendationStatus = "completed"
)

var RecommendationStatuses = []RecommendationStatus{
	StatusNotified,
	StatusRiskAccepted,
	StatusInProgress,
	StatusCompleted,
}

func (s RecommendationStatus) Valid() bool {
	for _, status := range RecommendationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// RecommendationType drives the visual severity of a recommendation card.
type RecommendationType string

const (
	RecommendationWarning RecommendationType = "warning"
	RecommendationDanger  RecommendationType = "danger"
	RecommendationInfo    RecommendationType = "info"
	RecommendationSuccess RecommendationType = "success"
)

func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationWarning, RecommendationDanger, RecommendationInfo, RecommendationSuccess:
		return true
	default:
		return false
	}
}

type Recommendation struct {
	ID                int64
	UserID            int64
	GoalType          GoalType
	Title             string
	Description       string
	ActionableInsight *string
	PotentialImpact   *string
	EstimatedSavings  *string
	TimeToImplement   *string
	Type              RecommendationType
	Status            RecommendationStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type RecommendationStep struct {
	ID               int64
	RecommendationID int64
	Position         int
	Title            string
	Description      *string
	IsCompleted      bool
	CompletedAt      *time.Time
	CreatedAt        time.Time
}

// RecommendationFilter narrows a user's recommendation list. A nil Goal lists all goals.
type RecommendationFilter struct {
	UserID int64
	Goal   *GoalType
}

// StatusSuggestion is the status derived from step completion. It is never persisted on its own.
type StatusSuggestion struct {
	Status         RecommendationStatus
	CompletedSteps int
	TotalSteps     int
}

// CompletionResult is returned by the explicit "mark complete" action.
type CompletionResult struct {
	Recommendation Recommendation
	Score          *FleetScore
}
