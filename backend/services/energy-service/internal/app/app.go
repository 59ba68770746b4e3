package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"solarpulse/backend/libs/db"
	"solarpulse/backend/services/energy-service/internal/auth"
	"solarpulse/backend/services/energy-service/internal/config"
	httpserver "solarpulse/backend/services/energy-service/internal/http"
	"solarpulse/backend/services/energy-service/internal/http/handlers"
	"solarpulse/backend/services/energy-service/internal/repository"
	"solarpulse/backend/services/energy-service/internal/service"
	"solarpulse/backend/services/energy-service/internal/ws"
)

// App wires energy service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	logger *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	telemetryRepo := repository.NewTelemetryRepository(sqlDB)
	accountRepo := repository.NewAccountRepository(sqlDB)
	fallback := service.NewFallbackGenerator(nil, nil)
	energyService := service.NewEnergyService(telemetryRepo, accountRepo, fallback, cfg.Summary.StrictZeros, logger)

	routes := httpserver.Routes{
		Realtime:   handlers.NewRealtimeHandler(energyService),
		History:    handlers.NewHistoryHandler(energyService),
		Summary:    handlers.NewSummaryHandler(energyService),
		Ingest:     handlers.NewIngestHandler(energyService),
		FleetStats: handlers.NewFleetStatsHandler(energyService),
		Live:       ws.NewLiveFeed(energyService, cfg.Live.PushInterval, logger),
		Health:     handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, auth.Middleware(cfg.Auth.JWTSecret))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts serving HTTP requests.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
