// Background worker for the entity screening service. It consumes completed
// screening results from kafka and runs a risk assessment per message.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumenrisk/entity-screening/internal/application/screening"
	"github.com/lumenrisk/entity-screening/internal/config"
	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/postgres"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/postgres/repositories"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/redis"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/messaging/kafka"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/prometheus"
)

var version = "dev"

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	workers := flag.Int("workers", 0, "number of concurrent consumers (overrides config)")
	healthPort := flag.Int("health-port", 8081, "port for /healthz and /metrics")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Screening.WorkerConcurrency = *workers
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting screening worker",
		logging.String("version", version),
		logging.Int("concurrency", cfg.Screening.WorkerConcurrency),
	)

	if err := run(cfg, logger, *healthPort); err != nil && err != context.Canceled {
		logger.Error("worker exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger, healthPort int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, postgresConfig(cfg.Database), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(redisConfig(cfg.Redis), logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, logger)

	producer, err := kafka.NewProducer(producerConfig(cfg.Kafka), logger)
	if err != nil {
		return err
	}
	defer producer.Close()

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Screening.MetricsNamespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	})
	if err != nil {
		return err
	}
	metrics := prometheus.NewAppMetrics(collector)

	profileService := profile.NewService(repositories.NewProfileRepo(pool.Pool(), logger), logger)
	assessor := screening.NewService(profileService, logger, screening.Options{
		Cache:    cache,
		Producer: producer,
		Metrics:  metrics,
		CacheTTL: cfg.Screening.AssessmentCacheTTL,
		Source:   "worker",
	})

	healthSrv := startHealthServer(healthPort, collector, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = healthSrv.Shutdown(shutdownCtx)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Screening.WorkerConcurrency; i++ {
		consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topics:  []string{kafka.TopicScreeningCompleted},
		}, producer, logger)
		if err != nil {
			return err
		}
		consumer.On(kafka.TopicScreeningCompleted, assessHandler(assessor, logger))

		g.Go(func() error {
			defer consumer.Close()
			return consumer.Run(gctx)
		})
	}

	logger.Info("worker consuming", logging.String("topic", kafka.TopicScreeningCompleted))
	return g.Wait()
}

// assessHandler runs one assessment per screening.completed message. A
// handler error sends the message to the dead letter topic, so only decode
// and input errors are surfaced; infrastructure errors are already degraded
// inside Assess.
func assessHandler(assessor screening.Service, logger logging.Logger) kafka.Handler {
	return func(ctx context.Context, envelope *kafka.EventEnvelope) error {
		var payload kafka.ScreeningCompletedPayload
		if err := envelope.DecodePayload(&payload); err != nil {
			return err
		}
		result, err := assessor.Assess(ctx, screening.AssessmentRequest{
			EntityID:  payload.EntityID,
			FactorIDs: payload.FactorIDs,
			ProfileID: payload.ProfileID,
		})
		if err != nil {
			return err
		}
		logger.Info("entity assessed",
			logging.String("entity_id", result.EntityID),
			logging.Int("total_score", result.Score.TotalScore),
			logging.Bool("breach", result.Score.MeetsThreshold),
		)
		return nil
	}
}

func startHealthServer(port int, collector prometheus.MetricsCollector, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", logging.Err(err))
		}
	}()
	return srv
}
