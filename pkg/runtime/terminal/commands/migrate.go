package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

func NewMigrateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := postgres.ParseDirection(args[0])
			if err != nil {
				return err
			}
			return env.withBackend(cmd, func(_ context.Context, b *Backend) error {
				if err := b.Migrate(direction); err != nil {
					return err
				}
				return env.Reporter.Message("migrations applied (%s)", direction)
			})
		},
	}
}
