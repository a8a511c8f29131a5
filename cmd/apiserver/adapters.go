package main

import (
	"context"

	"github.com/lumenrisk/entity-screening/internal/config"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/postgres"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/redis"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/messaging/kafka"
	"github.com/lumenrisk/entity-screening/internal/interfaces/http/middleware"
)

// corsConfig maps the server CORS section onto the middleware config.
// Returns nil when CORS is disabled so the router skips the middleware.
func corsConfig(cfg config.CORSConfig) *middleware.CORSConfig {
	if !cfg.Enabled {
		return nil
	}
	c := middleware.DefaultCORSConfig()
	c.AllowedOrigins = cfg.AllowedOrigins
	if len(cfg.AllowedMethods) > 0 {
		c.AllowedMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		c.AllowedHeaders = cfg.AllowedHeaders
	}
	c.AllowCredentials = cfg.AllowCredentials
	if cfg.MaxAge > 0 {
		c.MaxAge = cfg.MaxAge
	}
	return &c
}

// postgresConfig maps the application database config onto the pool config.
func postgresConfig(cfg config.DatabaseConfig) postgres.Config {
	return postgres.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Database:        cfg.DBName,
		Username:        cfg.User,
		Password:        cfg.Password,
		SSLMode:         cfg.SSLMode,
		MaxConns:        int32(cfg.MaxConns),
		MinConns:        int32(cfg.MinConns),
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		MigrationsDir:   cfg.MigrationsDir,
	}
}

func redisConfig(cfg config.RedisConfig) redis.Config {
	return redis.Config{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func producerConfig(cfg config.KafkaConfig) kafka.ProducerConfig {
	return kafka.ProducerConfig{
		Brokers:      cfg.Brokers,
		Acks:         cfg.Acks,
		MaxRetries:   cfg.ProducerRetries,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
	}
}

// Health adapters for the readiness probe.

type postgresHealthAdapter struct {
	pool *postgres.Pool
}

func (a *postgresHealthAdapter) Name() string { return "postgres" }

func (a *postgresHealthAdapter) Check(ctx context.Context) error {
	return a.pool.HealthCheck(ctx)
}

type redisHealthAdapter struct {
	client *redis.Client
}

func (a *redisHealthAdapter) Name() string { return "redis" }

func (a *redisHealthAdapter) Check(ctx context.Context) error {
	return a.client.Ping(ctx)
}
