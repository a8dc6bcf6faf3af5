package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/services/config"
	"github.com/de-tools/fleet-atlas/pkg/services/fleet"
	"github.com/de-tools/fleet-atlas/pkg/services/recommendation"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
	"github.com/de-tools/fleet-atlas/pkg/services/scoring"
	"github.com/de-tools/fleet-atlas/pkg/services/seed"
	"github.com/de-tools/fleet-atlas/pkg/store/cache"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/integrations"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/recommendations"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/scores"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/users"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/vehicles"
	scoringstore "github.com/de-tools/fleet-atlas/pkg/store/scoring"
)

// App holds the connections, stores and services shared by the web server and fleetctl.
type App struct {
	DB         *sqlx.DB
	Redis      *redis.Client
	Transactor *postgres.Transactor
	Stores     seed.Stores

	Users           fleet.UserService
	Vehicles        fleet.VehicleService
	Integrations    fleet.IntegrationService
	Recommendations recommendation.Service
	Scores          score.Aggregator
	Catalog         scoring.Catalog
}

// Open connects to PostgreSQL and, when configured, Redis, then builds every service.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zerolog.Ctx(ctx)

	db, err := postgres.Connect(ctx, postgres.Settings{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a := &App{DB: db}

	var scoreCache cache.ScoreCache
	if cfg.Redis.Enabled() {
		a.Redis = cache.NewRedis(cache.Settings{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(ctx, a.Redis); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		scoreCache, err = cache.NewScoreCache(a.Redis, cfg.Redis.TTL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		logger.Info().Str("address", cfg.Redis.Address).Msg("score cache enabled")
	}

	if err := a.build(cfg.Scoring, scoreCache); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(scoringCfg config.ScoringConfig, scoreCache cache.ScoreCache) error {
	var err error
	if a.Transactor, err = postgres.NewTransactor(a.DB); err != nil {
		return err
	}
	if a.Stores.Users, err = users.NewStore(a.DB); err != nil {
		return fmt.Errorf("failed to create user store: %w", err)
	}
	if a.Stores.Vehicles, err = vehicles.NewStore(a.DB); err != nil {
		return fmt.Errorf("failed to create vehicle store: %w", err)
	}
	if a.Stores.Integrations, err = integrations.NewStore(a.DB); err != nil {
		return fmt.Errorf("failed to create integration store: %w", err)
	}
	if a.Stores.Recommendations, err = recommendations.NewStore(a.DB); err != nil {
		return fmt.Errorf("failed to create recommendation store: %w", err)
	}
	if a.Stores.Scores, err = scores.NewStore(a.DB); err != nil {
		return fmt.Errorf("failed to create score store: %w", err)
	}

	if a.Users, err = fleet.NewUserService(a.Stores.Users); err != nil {
		return err
	}
	if a.Vehicles, err = fleet.NewVehicleService(a.Stores.Vehicles); err != nil {
		return err
	}
	if a.Integrations, err = fleet.NewIntegrationService(a.Stores.Integrations); err != nil {
		return err
	}
	if a.Scores, err = score.NewAggregator(a.Stores.Scores, scoreCache); err != nil {
		return err
	}

	strategy, err := score.NewDeltaStrategy(scoringCfg.DeltaStrategy, scoringCfg.FixedDelta, scoringCfg.Seed)
	if err != nil {
		return err
	}
	if a.Recommendations, err = recommendation.NewService(a.Stores.Recommendations, a.Scores, strategy, a.Transactor); err != nil {
		return err
	}
	if a.Catalog, err = scoring.NewCatalog(scoringstore.NewStore()); err != nil {
		return err
	}
	return nil
}

func (a *App) Seeder() (*seed.Seeder, error) {
	return seed.NewSeeder(a.Stores, a.Transactor)
}

func (a *App) Health(ctx context.Context) error {
	if err := a.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if a.Redis != nil {
		if err := cache.Ping(ctx, a.Redis); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
