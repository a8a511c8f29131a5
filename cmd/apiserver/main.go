// API server entry point for the entity screening service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumenrisk/entity-screening/internal/application/profiles"
	"github.com/lumenrisk/entity-screening/internal/application/screening"
	"github.com/lumenrisk/entity-screening/internal/config"
	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/postgres"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/postgres/repositories"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/redis"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/messaging/kafka"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/prometheus"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/profilefile"
	httpserver "github.com/lumenrisk/entity-screening/internal/interfaces/http"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/handlers"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/middleware"
	apperrors "github.com/lumenrisk/entity-screening/pkg/errors"
)

var version = "dev"

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("port", 0, "HTTP server port (overrides config)")
	skipMigrations := flag.Bool("skip-migrations", false, "do not run schema migrations on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting screening API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	if err := run(cfg, logger, *skipMigrations); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger, skipMigrations bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgCfg := postgresConfig(cfg.Database)
	pool, err := postgres.NewPool(ctx, pgCfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !skipMigrations {
		if err := postgres.RunMigrations(pgCfg.DSN(), pgCfg.MigrationsDir); err != nil {
			return err
		}
	}

	redisClient, err := redis.NewClient(redisConfig(cfg.Redis), logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	cacheOpts := []redis.CacheOption{}
	if cfg.Redis.KeyPrefix != "" {
		cacheOpts = append(cacheOpts, redis.WithPrefix(cfg.Redis.KeyPrefix))
	}
	if cfg.Redis.DefaultTTL > 0 {
		cacheOpts = append(cacheOpts, redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
	}
	cache := redis.NewCache(redisClient, logger, cacheOpts...)

	var producer *kafka.Producer
	if cfg.Screening.PublishEvents {
		producer, err = kafka.NewProducer(producerConfig(cfg.Kafka), logger)
		if err != nil {
			return err
		}
		defer producer.Close()
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Screening.MetricsNamespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	})
	if err != nil {
		return err
	}
	metrics := prometheus.NewAppMetrics(collector)

	profileRepo := repositories.NewProfileRepo(pool.Pool(), logger)
	profileService := profile.NewService(profileRepo, logger)
	if producer != nil {
		profileService = profiles.NewPublishingService(profileService, producer, "apiserver", logger)
	}

	if cfg.Screening.ProfileDir != "" {
		if err := seedProfiles(ctx, cfg.Screening.ProfileDir, profileService, logger); err != nil {
			return err
		}
	}

	screeningService := screening.NewService(profileService, logger, screening.Options{
		Cache:    cache,
		Producer: producer,
		Metrics:  metrics,
		CacheTTL: cfg.Screening.AssessmentCacheTTL,
		Source:   "apiserver",
	})

	loggingCfg := middleware.DefaultLoggingConfig()
	loggingCfg.Metrics = metrics

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ProfileHandler:   handlers.NewProfileHandler(profileService, logger),
		ScreeningHandler: handlers.NewScreeningHandler(screeningService, logger),
		HealthHandler: handlers.NewHealthHandler(version,
			&postgresHealthAdapter{pool: pool},
			&redisHealthAdapter{client: redisClient},
		),
		CORSConfig:       corsConfig(cfg.Server.CORS),
		LoggingConfig:    &loggingCfg,
		Logger:           logger,
		MetricsCollector: collector,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	return server.Stop(context.Background())
}

// seedProfiles loads profile definitions from disk and upserts them into the
// store. Existing profiles with the same id are updated in place.
func seedProfiles(ctx context.Context, dir string, svc profile.Service, logger logging.Logger) error {
	profiles, err := profilefile.NewLoader(logger).LoadDir(dir)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if _, err := svc.Create(ctx, p); err != nil {
			if !apperrors.IsCode(err, apperrors.ErrCodeProfileAlreadyExists) {
				return err
			}
			if _, err := svc.Update(ctx, p); err != nil {
				return err
			}
		}
	}
	logger.Info("seeded risk profiles", logging.Int("count", len(profiles)), logging.String("dir", dir))
	return nil
}
