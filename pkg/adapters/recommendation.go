package adapters

import (
	"github.com/de-tools/fleet-atlas/pkg/models/api"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/models/store"
)

func MapStoreRecommendationToDomain(r store.Recommendation) domain.Recommendation {
	return domain.Recommendation{
		ID:                r.ID,
		UserID:            r.UserID,
		GoalType:          domain.GoalType(r.GoalType),
		Title:             r.Title,
		Description:       r.Description,
		ActionableInsight: nullStringPtr(r.ActionableInsight),
		PotentialImpact:   nullStringPtr(r.PotentialImpact),
		EstimatedSavings:  nullStringPtr(r.EstimatedSavings),
		TimeToImplement:   nullStringPtr(r.TimeToImplement),
		Type:              domain.RecommendationType(r.Type),
		Status:            domain.RecommendationStatus(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func MapDomainRecommendationToStore(r domain.Recommendation) store.Recommendation {
	return store.Recommendation{
		ID:                r.ID,
		UserID:            r.UserID,
		GoalType:          string(r.GoalType),
		Title:             r.Title,
		Description:       r.Description,
		ActionableInsight: ptrNullString(r.ActionableInsight),
		PotentialImpact:   ptrNullString(r.PotentialImpact),
		EstimatedSavings:  ptrNullString(r.EstimatedSavings),
		TimeToImplement:   ptrNullString(r.TimeToImplement),
		Type:              string(r.Type),
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func MapStoreStepToDomain(s store.RecommendationStep) domain.RecommendationStep {
	return domain.RecommendationStep{
		ID:               s.ID,
		RecommendationID: s.RecommendationID,
		Position:         s.Position,
		Title:            s.Title,
		Description:      nullStringPtr(s.Description),
		IsCompleted:      s.IsCompleted,
		CompletedAt:      nullTimePtr(s.CompletedAt),
		CreatedAt:        s.CreatedAt,
	}
}

func MapRecommendationDomainToApi(r domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		ID:                r.ID,
		UserID:            r.UserID,
		GoalType:          string(r.GoalType),
		Title:             r.Title,
		Description:       r.Description,
		ActionableInsight: r.ActionableInsight,
		PotentialImpact:   r.PotentialImpact,
		EstimatedSavings:  r.EstimatedSavings,
		TimeToImplement:   r.TimeToImplement,
		Type:              string(r.Type),
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func MapRecommendationsDomainToApi(recs []domain.Recommendation) []api.Recommendation {
	res := make([]api.Recommendation, 0, len(recs))
	for _, r := range recs {
		res = append(res, MapRecommendationDomainToApi(r))
	}
	return res
}

func MapStepDomainToApi(s domain.RecommendationStep) api.RecommendationStep {
	return api.RecommendationStep{
		ID:               s.ID,
		RecommendationID: s.RecommendationID,
		Position:         s.Position,
		Title:            s.Title,
		Description:      s.Description,
		IsCompleted:      s.IsCompleted,
		CompletedAt:      s.CompletedAt,
	}
}

func MapStepsDomainToApi(steps []domain.RecommendationStep) []api.RecommendationStep {
	res := make([]api.RecommendationStep, 0, len(steps))
	for _, s := range steps {
		res = append(res, MapStepDomainToApi(s))
	}
	return res
}

func MapSuggestionDomainToApi(s domain.StatusSuggestion) api.StatusSuggestion {
	return api.StatusSuggestion{
		Status:         string(s.Status),
		CompletedSteps: s.CompletedSteps,
		TotalSteps:     s.TotalSteps,
	}
}

func MapCompletionDomainToApi(c domain.CompletionResult) api.CompletionResult {
	res := api.CompletionResult{
		Recommendation: MapRecommendationDomainToApi(c.Recommendation),
	}
	if c.Score != nil {
		score := MapFleetScoreDomainToApi(*c.Score)
		res.Score = &score
	}
	return res
}
