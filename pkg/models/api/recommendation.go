package api

import "time"

type Recommendation struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	GoalType          string    `json:"goalType"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ActionableInsight *string   `json:"actionableInsight,omitempty"`
	PotentialImpact   *string   `json:"potentialImpact,omitempty"`
	EstimatedSavings  *string   `json:"estimatedSavings,omitempty"`
	TimeToImplement   *string   `json:"timeToImplement,omitempty"`
	Type              string    `json:"type"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type RecommendationStep struct {
	ID               int64      `json:"id"`
	RecommendationID int64      `json:"recommendationId"`
	Position         int        `json:"position"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	IsCompleted      bool       `json:"isCompleted"`
	CompletedAt      *time.Time `json:"completedAt"`
}

type StatusSuggestion struct {
	Status         string `json:"status"`
	CompletedSteps int    `json:"completedSteps"`
	TotalSteps     int    `json:"totalSteps"`
}

type CompletionResult struct {
	Recommendation Recommendation `json:"recommendation"`
	Score          *FleetScore    `json:"score,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type SetStepCompletionRequest struct {
	IsCompleted bool `json:"isCompleted"`
}
