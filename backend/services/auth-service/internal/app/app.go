package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"solarpulse/backend/libs/db"
	libredis "solarpulse/backend/libs/redis"
	"solarpulse/backend/services/auth-service/internal/config"
	httpserver "solarpulse/backend/services/auth-service/internal/http"
	"solarpulse/backend/services/auth-service/internal/http/handlers"
	"solarpulse/backend/services/auth-service/internal/password"
	"solarpulse/backend/services/auth-service/internal/repository"
	"solarpulse/backend/services/auth-service/internal/service"
	"solarpulse/backend/services/auth-service/internal/session"
)

// App wires auth service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	accountRepo := repository.NewAccountRepository(sqlDB)
	hasher := password.NewBcryptHasher(0)
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	sessions := session.NewStore(redisClient)
	authService := service.NewAuthService(accountRepo, hasher, tokenService, sessions, logger)

	routes := httpserver.Routes{
		Register: handlers.NewRegisterHandler(authService),
		Login:    handlers.NewLoginHandler(authService),
		Me:       handlers.NewMeHandler(authService),
		Logout:   handlers.NewLogoutHandler(authService),
		Health:   handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
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
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
