package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/senceapptr/SenceApp-sub004/internal/app"
	"github.com/senceapptr/SenceApp-sub004/internal/config"
	"github.com/senceapptr/SenceApp-sub004/internal/infra/memory"
	"github.com/senceapptr/SenceApp-sub004/internal/infra/postgres"
	rediscache "github.com/senceapptr/SenceApp-sub004/internal/infra/redis"
	"github.com/senceapptr/SenceApp-sub004/internal/infra/sqlite"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
	transport "github.com/senceapptr/SenceApp-sub004/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger.Default()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	loader, closeLoader, err := newCatalogLoader(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLoader()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalogs app.CatalogRepository
	var store app.SessionRepository
	if redisClient != nil {
		catalogs = rediscache.NewCatalogRepository(redisClient, loader, catalogTTL)
		store = rediscache.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		catalogs = memory.NewCatalogRepository(loader, catalogTTL)
		store = memory.NewSessionStore()
	}

	service := app.NewTriviaService(store, catalogs, app.Options{
		Settings: cfg.TriviaSettings(),
		Seed:     cfg.Trivia.Seed,
	})

	// Fail fast on a broken catalog instead of on the first player.
	categories, err := service.Categories(ctx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"source":     cfg.CatalogSource(),
		"categories": len(categories),
	}).Info("catalog ready")

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(service),
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", finalPort).Info("starting trivia service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newCatalogLoader picks the backing store named by catalog.source. The returned
// func releases whatever connection the loader holds.
func newCatalogLoader(ctx context.Context, cfg config.Config) (memory.CatalogLoader, func(), error) {
	noop := func() {}
	switch source := cfg.CatalogSource(); source {
	case config.SourceEmbedded:
		return memory.NewEmbeddedCatalogLoader(), noop, nil
	case config.SourceFile:
		if cfg.Catalog.Path == "" {
			return nil, noop, fmt.Errorf("catalog.path not configured")
		}
		return memory.NewFileCatalogLoader(cfg.Catalog.Path), noop, nil
	case config.SourcePostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, noop, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		return postgres.NewCatalogLoader(pool), pool.Close, nil
	case config.SourceSQLite:
		if cfg.SQLite.Path == "" {
			return nil, noop, fmt.Errorf("sqlite.path not configured")
		}
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		return sqlite.NewCatalogLoader(db), func() { db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", source)
	}
}
