package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shopline/catalog-service/internal/api/http"
	"github.com/shopline/catalog-service/internal/api/http/handlers"
	"github.com/shopline/catalog-service/internal/config"
	"github.com/shopline/catalog-service/internal/events"
	"github.com/shopline/catalog-service/internal/observability"
	"github.com/shopline/catalog-service/internal/persistence"
	"github.com/shopline/catalog-service/internal/repository"
	"github.com/shopline/catalog-service/internal/service"
	"github.com/shopline/catalog-service/internal/worker"
)

// storage is the backend selected by STORAGE_BACKEND.
type storage struct {
	products repository.ProductRepository
	users    repository.UserRepository
	pinger   handlers.Pinger
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer store.close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	productService := service.NewProductService(store.products, dispatcher, logger)
	userService := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo:   store.users,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, cfg.CORS, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Backend, store.pinger),
		Products: handlers.NewProductsHandler(productService),
		Users:    handlers.NewUsersHandler(userService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		pool := pg.PoolHandle()
		return &storage{
			products: repository.NewPostgresProductRepository(pool),
			users:    repository.NewPostgresUserRepository(pool),
			pinger:   pg,
			close:    pg.Close,
		}, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		mem := repository.NewMemoryStore()
		return &storage{
			products: mem.Products(),
			users:    mem.Users(),
			pinger:   mem,
			close:    func() {},
		}, nil
	}

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}
	if err := repository.EnsureMongoIndexes(ctx, mongo.Database()); err != nil {
		_ = mongo.Close(context.Background())
		return nil, err
	}
	db := mongo.Database()
	return &storage{
		products: repository.NewProductRepository(db),
		users:    repository.NewUserRepository(db),
		pinger:   mongo,
		close: func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongo.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect", zap.Error(err))
			}
		},
	}, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
