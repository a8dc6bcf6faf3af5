package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/fleet-atlas/pkg/services/config"
	exportsvc "github.com/de-tools/fleet-atlas/pkg/services/export"
	"github.com/de-tools/fleet-atlas/pkg/services/fleet"
	"github.com/de-tools/fleet-atlas/pkg/services/recommendation"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
	"github.com/de-tools/fleet-atlas/pkg/services/scoring"
	"github.com/de-tools/fleet-atlas/pkg/services/seed"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

type Seeder interface {
	Seed(ctx context.Context, data *seed.Data) (seed.Result, error)
}

// Backend is everything a command needs from the database side.
type Backend struct {
	Migrate         func(direction postgres.Direction) error
	Seeder          Seeder
	Recommendations recommendation.Service
	Integrations    fleet.IntegrationService
	Scores          score.Aggregator
	Export          config.ExportConfig
	NewUploader     func(ctx context.Context) (exportsvc.Uploader, error)
	Close           func() error
}

// Env is shared by every command. Open is only called by commands that touch the database.
type Env struct {
	Open     func(ctx context.Context) (*Backend, error)
	Catalog  scoring.Catalog
	Reporter *export.Reporter
}

func (e *Env) withBackend(cmd *cobra.Command, fn func(ctx context.Context, b *Backend) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if e.Open == nil {
		return fmt.Errorf("no backend configured")
	}

	b, err := e.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if b.Close == nil {
			return
		}
		if err := b.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close backend")
		}
	}()

	return fn(ctx, b)
}
