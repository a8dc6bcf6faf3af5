package store

import (
	"database/sql"
	"time"
)

type Recommendation struct {
	ID                int64          `db:"id"`
	UserID            int64          `db:"user_id"`
	GoalType          string         `db:"goal_type"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	ActionableInsight sql.NullString `db:"actionable_insight"`
	PotentialImpact   sql.NullString `db:"potential_impact"`
	EstimatedSavings  sql.NullString `db:"estimated_savings"`
	TimeToImplement   sql.NullString `db:"time_to_implement"`
	Type              string         `db:"type"`
	Status            string         `db:"status"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type RecommendationStep struct {
	ID               int64          `db:"id"`
	RecommendationID int64          `db:"recommendation_id"`
	Position         int            `db:"position"`
	Title            string         `db:"title"`
	Description      sql.NullString `db:"description"`
	IsCompleted      bool           `db:"is_completed"`
	CompletedAt      sql.NullTime   `db:"completed_at"`
	CreatedAt        time.Time      `db:"created_at"`
}

type FleetScore struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	GoalType   string    `db:"goal_type"`
	Score      float64   `db:"score"`
	Delta      float64   `db:"delta"`
	RecordedAt time.Time `db:"recorded_at"`
}
