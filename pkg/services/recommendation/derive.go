package recommendation

import "github.com/de-tools/fleet-atlas/pkg/models/domain"

// DeriveStatus suggests a status from checklist progress. It never writes.
// No completed steps (or no steps at all) suggests notified, all completed suggests
// completed, anything in between suggests in_progress.
func DeriveStatus(steps []domain.RecommendationStep) domain.StatusSuggestion {
	completed := 0
	for _, s := range steps {
		if s.IsCompleted {
			completed++
		}
	}

	suggestion := domain.StatusSuggestion{
		CompletedSteps: completed,
		TotalSteps:     len(steps),
	}
	switch {
	case completed == 0:
		suggestion.Status = domain.StatusNotified
	case completed == len(steps):
		suggestion.Status = domain.StatusCompleted
	default:
		suggestion.Status = domain.StatusInProgress
	}
	return suggestion
}
