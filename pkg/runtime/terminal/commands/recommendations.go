package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/runtime/terminal/export"
)

type RecommendationsCmd struct {
	userID int64
	goal   string
	env    *Env
}

func NewRecommendationsCmd(env *Env) *cobra.Command {
	rc := &RecommendationsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "recommendations",
		Short: "List a user's recommendations with their suggested status",
		RunE:  rc.run,
	}

	cmd.Flags().Int64Var(&rc.userID, "user", 0, "User id")
	cmd.Flags().StringVar(&rc.goal, "goal", "", "Only show one goal (safety, fuel, maintenance, utilization)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (rc *RecommendationsCmd) run(cmd *cobra.Command, _ []string) error {
	filter := domain.RecommendationFilter{UserID: rc.userID}
	if rc.goal != "" {
		goal, err := domain.ParseGoalType(rc.goal)
		if err != nil {
			return err
		}
		filter.Goal = &goal
	}

	return rc.env.withBackend(cmd, func(ctx context.Context, b *Backend) error {
		recs, err := b.Recommendations.List(ctx, filter)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return rc.env.Reporter.Message("No recommendations found for user %d", rc.userID)
		}

		rows := make([]export.RecommendationRow, 0, len(recs))
		for _, rec := range recs {
			suggestion, err := b.Recommendations.SuggestStatus(ctx, rec.ID)
			if err != nil {
				return err
			}
			rows = append(rows, export.RecommendationRow{Recommendation: rec, Suggestion: suggestion})
		}
		return rc.env.Reporter.Recommendations(rows)
	})
}
