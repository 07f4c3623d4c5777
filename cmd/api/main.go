package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/todo-service/internal/api/http"
	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/audit"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/observability"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	signingKey, err := cfg.Auth.SigningKey()
	if err != nil {
		logger.Fatal("invalid signing key", zap.Error(err))
	}
	routes, err := auth.LoadRouteTable(cfg.Auth.RoutePolicyFile)
	if err != nil {
		logger.Fatal("failed to load route policy", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var (
		userRepo    repository.UserRepository
		commentRepo repository.CommentRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pool)
		commentRepo = repository.NewCommentRepository(pool)
	} else {
		logger.Warn("using in-memory repositories")
		userRepo = repository.NewMemoryUserRepository()
		commentRepo = repository.NewMemoryCommentRepository()
	}

	metrics := observability.NewMetrics()

	sinks := []audit.Sink{audit.NewLogSink(logger)}
	healthDeps := map[string]handlers.Pinger{}
	if pg.PoolHandle() != nil {
		healthDeps["postgres"] = pg
	}
	var trail handlers.AuditTrail
	if cfg.Audit.Enabled {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		redisSink := audit.NewRedisSink(redis.Client, cfg.Audit.RedisKey, cfg.Audit.MaxEntries)
		sinks = append(sinks, redisSink)
		trail = redisSink
		healthDeps["redis"] = redis
	}
	recorder := audit.NewRecorder(logger, metrics, sinks...)

	tokens := auth.NewTokenManager(signingKey, cfg.Auth.AccessTokenTTL())
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	adminService := service.NewAdminService(userRepo, commentRepo)

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Admin:          handlers.NewAdminHandler(adminService, recorder, trail),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, routes, logger, metrics),
		AdminGate:      auth.NewAdminGate(tokens, routes, logger, metrics),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
