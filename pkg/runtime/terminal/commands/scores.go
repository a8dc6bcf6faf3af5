package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	exportsvc "github.com/de-tools/fleet-atlas/pkg/services/export"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
)

type ExportCmd struct {
	userID int64
	goal   string
	limit  int
	bucket string
	key    string
	out    string
	env    *Env
}

func NewScoresCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Fleet score history",
	}
	cmd.AddCommand(newExportCmd(env))
	return cmd
}

func newExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a goal's score history as CSV to a file, stdout or S3",
		RunE:  ec.run,
	}

	cmd.Flags().Int64Var(&ec.userID, "user", 0, "User id")
	cmd.Flags().StringVar(&ec.goal, "goal", "", "Goal (safety, fuel, maintenance, utilization)")
	cmd.Flags().IntVar(&ec.limit, "limit", score.MaxHistoryLimit, "Maximum number of records")
	cmd.Flags().StringVar(&ec.bucket, "bucket", "", "S3 bucket (defaults to export.bucket from config)")
	cmd.Flags().StringVar(&ec.key, "key", "", "S3 object key (derived when empty)")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file; stdout when empty and no bucket is set")

	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	goal, err := domain.ParseGoalType(ec.goal)
	if err != nil {
		return err
	}
	req := exportsvc.Request{UserID: ec.userID, Goal: goal, Limit: ec.limit}

	return ec.env.withBackend(cmd, func(ctx context.Context, b *Backend) error {
		bucket := ec.bucket
		if bucket == "" && ec.out == "" {
			bucket = b.Export.Bucket
		}

		if bucket != "" {
			return ec.upload(ctx, b, bucket, req)
		}

		exporter, err := exportsvc.NewExporter(b.Scores, nil, b.Export.Prefix)
		if err != nil {
			return err
		}
		if ec.out == "" {
			_, err := exporter.Write(ctx, cmd.OutOrStdout(), req)
			return err
		}

		f, err := os.Create(ec.out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", ec.out, err)
		}
		n, err := exporter.Write(ctx, f, req)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
		return ec.env.Reporter.Message("wrote %d records to %s", n, ec.out)
	})
}

func (ec *ExportCmd) upload(ctx context.Context, b *Backend, bucket string, req exportsvc.Request) error {
	if b.NewUploader == nil {
		return fmt.Errorf("s3 upload is not configured")
	}
	uploader, err := b.NewUploader(ctx)
	if err != nil {
		return err
	}
	exporter, err := exportsvc.NewExporter(b.Scores, uploader, b.Export.Prefix)
	if err != nil {
		return err
	}
	key, err := exporter.Upload(ctx, bucket, ec.key, req)
	if err != nil {
		return err
	}
	return ec.env.Reporter.Message("uploaded s3://%s/%s", bucket, key)
}
