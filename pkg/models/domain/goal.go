package domain

import "fmt"

type GoalType string

const (
	GoalSafety      GoalType = "safety"
	GoalFuel        GoalType = "fuel"
	GoalMaintenance GoalType = "maintenance"
	GoalUtilization GoalType = "utilization"
)

var SupportedGoals = []GoalType{
	GoalSafety,
	GoalFuel,
	GoalMaintenance,
	GoalUtilization,
}

func (g GoalType) Valid() bool {
	switch g {
	case GoalSafety, GoalFuel, GoalMaintenance, GoalUtilization:
		return true
	default:
		return false
	}
}

func ParseGoalType(s string) (GoalType, error) {
	g := GoalType(s)
	if !g.Valid() {
		return "", NewValidationError("goal", fmt.Sprintf("unsupported goal %q", s))
	}
	return g, nil
}
