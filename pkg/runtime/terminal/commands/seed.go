package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/services/seed"
)

type SeedCmd struct {
	file string
	env  *Env
}

func NewSeedCmd(env *Env) *cobra.Command {
	sc := &SeedCmd{env: env}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, vehicles, integrations and recommendations",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.file, "file", "", "Path to a YAML seed file (default is the embedded demo seed)")
	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	data, err := seed.Load(sc.file)
	if err != nil {
		return err
	}

	return sc.env.withBackend(cmd, func(ctx context.Context, b *Backend) error {
		res, err := b.Seeder.Seed(ctx, data)
		if err != nil {
			return err
		}

		if err := sc.env.Reporter.Message(
			"seeded %d services, %d users, %d vehicles, %d recommendations (%d steps), %d scores",
			res.Services, res.Users, res.Vehicles, res.Recommendations, res.Steps, res.Scores,
		); err != nil {
			return err
		}
		if len(res.SkippedUsers) > 0 {
			return sc.env.Reporter.Message("skipped existing users: %s", strings.Join(res.SkippedUsers, ", "))
		}
		return nil
	})
}
