package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/music-hub/internal/api/http"
	"github.com/spec-kit/music-hub/internal/api/http/handlers"
	"github.com/spec-kit/music-hub/internal/auth"
	"github.com/spec-kit/music-hub/internal/config"
	"github.com/spec-kit/music-hub/internal/events"
	"github.com/spec-kit/music-hub/internal/observability"
	"github.com/spec-kit/music-hub/internal/persistence"
	"github.com/spec-kit/music-hub/internal/repository"
	"github.com/spec-kit/music-hub/internal/service"
	"github.com/spec-kit/music-hub/internal/storage"
	"github.com/spec-kit/music-hub/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	s3Handle, err := persistence.NewS3(ctx, cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err))
	}
	blobs := storage.NewS3BlobStore(s3Handle)

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	mediaRepo := repository.NewMediaRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	catalogCache := service.NewCatalogCache(redis, logger)
	catalogCache.RegisterHandlers(dispatcher)

	authService, err := service.NewAuthService(*cfg, accountRepo)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	catalogService := service.NewCatalogService(*cfg, service.CatalogDependencies{
		MediaRepo:  mediaRepo,
		Blobs:      blobs,
		Dispatcher: dispatcher,
		Cache:      catalogCache,
	}, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)

	sweeper := worker.NewSweeper(mediaRepo, blobs, cfg.Sweep, cfg.S3.KeyPrefix, logger)
	sweeper.Start(ctx)

	app := fiber.New(fiber.Config{
		StreamRequestBody: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, s3Handle, metrics)
	authHandler := handlers.NewAuthHandler(authService)
	mediaHandler := handlers.NewMediaHandler(catalogService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Media:          mediaHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
