package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	fleethandlers "github.com/de-tools/fleet-atlas/pkg/handlers/fleet"
	recommendationhandlers "github.com/de-tools/fleet-atlas/pkg/handlers/recommendation"
	"github.com/de-tools/fleet-atlas/pkg/handlers/response"
	scorehandlers "github.com/de-tools/fleet-atlas/pkg/handlers/score"
	scoringhandlers "github.com/de-tools/fleet-atlas/pkg/handlers/scoring"
	"github.com/de-tools/fleet-atlas/pkg/metrics"
	fleetmiddleware "github.com/de-tools/fleet-atlas/pkg/server/middleware"
	"github.com/de-tools/fleet-atlas/pkg/services/fleet"
	"github.com/de-tools/fleet-atlas/pkg/services/recommendation"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
	"github.com/de-tools/fleet-atlas/pkg/services/scoring"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Users           fleet.UserService
	Vehicles        fleet.VehicleService
	Integrations    fleet.IntegrationService
	Recommendations recommendation.Service
	Scores          score.Aggregator
	Catalog         scoring.Catalog
	// Health reports readiness of the backing store; nil means always healthy.
	Health func(ctx context.Context) error
}

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	fleetHandler := fleethandlers.NewHandler(deps.Users, deps.Vehicles, deps.Integrations)
	recHandler := recommendationhandlers.NewHandler(deps.Recommendations)
	scoreHandler := scorehandlers.NewHandler(deps.Scores)
	scoringHandler := scoringhandlers.NewHandler(deps.Catalog)

	router := chi.NewRouter()

	router.Use(fleetmiddleware.Logger(&logger))
	router.Use(fleetmiddleware.Metrics)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", health(deps.Health))
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/scoring", scoringHandler.List)
		r.Get("/scoring/{goal}", scoringHandler.Get)
		r.Get("/integration-services", fleetHandler.ListServices)

		r.Group(func(r chi.Router) {
			r.Use(fleetmiddleware.RequireUser)

			r.Get("/users/me", fleetHandler.Me)

			r.Get("/vehicles", fleetHandler.ListVehicles)
			r.Get("/vehicles/{id}", fleetHandler.GetVehicle)
			r.Patch("/vehicles/{id}", fleetHandler.UpdateVehicle)

			r.Get("/integrations", fleetHandler.ListIntegrations)
			r.Post("/integrations", fleetHandler.Connect)
			r.Put("/integrations/{id}/status", fleetHandler.SetIntegrationStatus)

			r.Get("/recommendations", recHandler.List)
			r.Get("/recommendations/{id}", recHandler.Get)
			r.Put("/recommendations/{id}/status", recHandler.SetStatus)
			r.Post("/recommendations/{id}/complete", recHandler.Complete)
			r.Get("/recommendations/{id}/suggested-status", recHandler.SuggestedStatus)
			r.Get("/recommendations/{id}/steps", recHandler.Steps)

			r.Put("/steps/{id}/completion", recHandler.SetStepCompletion)
			r.Post("/steps/{id}/toggle", recHandler.ToggleStep)

			r.Get("/fleet-scores/{goal}", scoreHandler.GetScore)
			r.Post("/fleet-scores/{goal}/improvements", scoreHandler.RecordImprovement)
			r.Get("/fleet-scores/{goal}/history", scoreHandler.History)
		})
	})

	return router
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
				response.WriteJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		response.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
