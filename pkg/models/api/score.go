package api

import "time"

type Score struct {
	Score float64 `json:"score"`
}

type FleetScore struct {
	ID         int64     `json:"id"`
	GoalType   string    `json:"goalType"`
	Score      float64   `json:"score"`
	Delta      float64   `json:"delta"`
	RecordedAt time.Time `json:"recordedAt"`
}

type ImprovementRequest struct {
	Delta float64 `json:"delta"`
}

type ScoringEvent struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
	Band        string `json:"band"`
}

type WeightBands struct {
	High   []ScoringEvent `json:"high"`
	Medium []ScoringEvent `json:"medium"`
	Low    []ScoringEvent `json:"low"`
}

type ScoringModel struct {
	Goal        string         `json:"goal"`
	Title       string         `json:"title"`
	Formula     string         `json:"formula"`
	Description string         `json:"description"`
	Events      []ScoringEvent `json:"events"`
	Bands       WeightBands    `json:"bands"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}
