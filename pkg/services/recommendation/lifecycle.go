package recommendation

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

func eventFor(status domain.RecommendationStatus) string {
	return "to_" + string(status)
}

// Any status may be committed from any other one.
var lifecycleEvents = func() fsm.Events {
	src := make([]string, 0, len(domain.RecommendationStatuses))
	for _, s := range domain.RecommendationStatuses {
		src = append(src, string(s))
	}

	events := make(fsm.Events, 0, len(domain.RecommendationStatuses))
	for _, s := range domain.RecommendationStatuses {
		events = append(events, fsm.EventDesc{Name: eventFor(s), Src: src, Dst: string(s)})
	}
	return events
}()

type lifecycle struct {
	*fsm.FSM
}

func newLifecycle(current domain.RecommendationStatus) *lifecycle {
	return &lifecycle{FSM: fsm.NewFSM(string(current), lifecycleEvents, fsm.Callbacks{})}
}

// Advance moves the machine to target and reports whether the status changed.
func (l *lifecycle) Advance(ctx context.Context, target domain.RecommendationStatus) (bool, error) {
	if !target.Valid() {
		return false, domain.NewValidationError("status", "must be one of notified, risk_accepted, in_progress, completed")
	}

	err := l.Event(ctx, eventFor(target))
	if err == nil {
		return true, nil
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return false, nil
	}
	return false, fmt.Errorf("transition %s -> %s: %w", l.Current(), target, err)
}
