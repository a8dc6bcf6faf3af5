package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/runtime/app"
	"github.com/de-tools/fleet-atlas/pkg/server"
	"github.com/de-tools/fleet-atlas/pkg/services/config"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Fleet Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML config file (FLEET_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close connections")
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(a.DB.DB, postgres.Up); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info().Msg("database schema is up to date")
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Users:           a.Users,
			Vehicles:        a.Vehicles,
			Integrations:    a.Integrations,
			Recommendations: a.Recommendations,
			Scores:          a.Scores,
			Catalog:         a.Catalog,
			Health:          a.Health,
		},
	})

	return api.Start()
}
