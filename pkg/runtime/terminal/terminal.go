package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/runtime/app"
	"github.com/de-tools/fleet-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fleet-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/fleet-atlas/pkg/services/config"
	exportsvc "github.com/de-tools/fleet-atlas/pkg/services/export"
	"github.com/de-tools/fleet-atlas/pkg/services/scoring"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
	scoringstore "github.com/de-tools/fleet-atlas/pkg/store/scoring"
)

// CLI represents the command-line interface
type CLI struct {
	env        *commands.Env
	configPath string
	profile    string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Open overrides how the database backend is built; by default it is
	// opened from the --config file.
	Open func(ctx context.Context) (*commands.Backend, error)
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) (*CLI, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	catalog, err := scoring.NewCatalog(scoringstore.NewStore())
	if err != nil {
		return nil, err
	}

	cli := &CLI{}
	cli.env = &commands.Env{
		Open:     opts.Open,
		Catalog:  catalog,
		Reporter: export.NewReporter(opts.Output),
	}
	if cli.env.Open == nil {
		cli.env.Open = cli.openBackend
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli, nil
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Fleet Atlas administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&cli.profile, "aws-profile", "", "AWS shared config profile used for S3 exports")

	cmd.AddCommand(commands.NewMigrateCmd(cli.env))
	cmd.AddCommand(commands.NewSeedCmd(cli.env))
	cmd.AddCommand(commands.NewScoringCmd(cli.env))
	cmd.AddCommand(commands.NewRecommendationsCmd(cli.env))
	cmd.AddCommand(commands.NewIntegrationsCmd(cli.env))
	cmd.AddCommand(commands.NewScoresCmd(cli.env))

	return cmd
}

func (cli *CLI) openBackend(ctx context.Context) (*commands.Backend, error) {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return nil, err
	}

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	seeder, err := a.Seeder()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create seeder: %w", err)
	}

	return &commands.Backend{
		Migrate: func(direction postgres.Direction) error {
			return postgres.Migrate(a.DB.DB, direction)
		},
		Seeder:          seeder,
		Recommendations: a.Recommendations,
		Integrations:    a.Integrations,
		Scores:          a.Scores,
		Export:          cfg.Export,
		NewUploader: func(ctx context.Context) (exportsvc.Uploader, error) {
			return exportsvc.NewS3Uploader(ctx, cli.profile, cfg.Export.Region)
		},
		Close: a.Close,
	}, nil
}
