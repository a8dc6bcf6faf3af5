package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

func NewScoringCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "scoring [goal]",
		Short: "Show how goal scores are weighted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			goals := domain.SupportedGoals
			if len(args) == 1 {
				goal, err := domain.ParseGoalType(args[0])
				if err != nil {
					return err
				}
				goals = []domain.GoalType{goal}
			}

			for _, goal := range goals {
				model, err := env.Catalog.Model(ctx, goal)
				if err != nil {
					return err
				}
				bands, err := env.Catalog.Bands(ctx, goal)
				if err != nil {
					return err
				}
				if err := env.Reporter.Scoring(model, bands); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
