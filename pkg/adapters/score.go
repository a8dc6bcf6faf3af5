package adapters

import (
	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
)

func MapStoreFleetScoreToDomain(s store.FleetScore) domain.FleetScore {
	return domain.FleetScore{
		ID:         s.ID,
		UserID:     s.UserID,
		GoalType:   domain.GoalType(s.GoalType),
		Score:      s.Score,
		Delta:      s.Delta,
		RecordedAt: s.RecordedAt,
	}
}

func MapFleetScoreDomainToApi(s domain.FleetScore) api.FleetScore {
	return api.FleetScore{
		ID:         s.ID,
		GoalType:   string(s.GoalType),
		Score:      s.Score,
		Delta:      s.Delta,
		RecordedAt: s.RecordedAt,
	}
}

func MapScoreHistoryDomainToApi(h domain.ScoreHistory) []api.FleetScore {
	res := make([]api.FleetScore, 0, len(h))
	for _, s := range h {
		res = append(res, MapFleetScoreDomainToApi(s))
	}
	return res
}

func MapScoringEventDomainToApi(e domain.ScoringEvent) api.ScoringEvent {
	return api.ScoringEvent{
		Name:        e.Name,
		Weight:      e.Weight,
		Description: e.Description,
		Band:        string(domain.BandFor(e.Weight)),
	}
}

func mapScoringEvents(events []domain.ScoringEvent) []api.ScoringEvent {
	res := make([]api.ScoringEvent, 0, len(events))
	for _, e := range events {
		res = append(res, MapScoringEventDomainToApi(e))
	}
	return res
}

func MapScoringModelDomainToApi(m domain.ScoringModel, bands domain.WeightBands) api.ScoringModel {
	return api.ScoringModel{
		Goal:        string(m.Goal),
		Title:       m.Title,
		Formula:     m.Formula,
		Description: m.Description,
		Events:      mapScoringEvents(m.Events),
		Bands: api.WeightBands{
			High:   mapScoringEvents(bands.High),
			Medium: mapScoringEvents(bands.Medium),
			Low:    mapScoringEvents(bands.Low),
		},
	}
}
