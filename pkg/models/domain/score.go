package domain

import "time"

// FleetScore is one record of the append-only score log of a (user, goal) pair.
type FleetScore struct {
	ID         int64
	UserID     int64
	GoalType   GoalType
	Score      float64
	Delta      float64
	RecordedAt time.Time
}

// ScoreHistory is ordered newest first.
type ScoreHistory []FleetScore

// Latest returns the projection the dashboard reads: the newest record, or a zero score.
func (h ScoreHistory) Latest() float64 {
	if len(h) == 0 {
		return MinScore
	}
	return h[0].Score
}

// ScoringEvent is reference data explaining how a goal score is weighted.
type ScoringEvent struct {
	Name        string
	Weight      int
	Description string
}

type ScoringModel struct {
	Goal        GoalType
	Title       string
	Formula     string
	Description string
	Events      []ScoringEvent
}

type WeightBand string

const (
	BandHigh   WeightBand = "high"
	BandMedium WeightBand = "medium"
	BandLow    WeightBand = "low"
)

func BandFor(weight int) WeightBand {
	switch {
	case weight >= 15:
		return BandHigh
	case weight >= 10:
		return BandMedium
	default:
		return BandLow
	}
}

type WeightBands struct {
	High   []ScoringEvent
	Medium []ScoringEvent
	Low    []ScoringEvent
}
