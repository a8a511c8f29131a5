package config

import (
	"strings"
	"time"
)

// Default values applied to unset fields.
const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "screening"
	DefaultDBMaxConns = 25

	DefaultMigrationsSource = "file://migrations"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "screening:"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "screening-workers"

	DefaultAssessmentCacheTTL = 15 * time.Minute
	DefaultMetricsNamespace   = "screening"
	DefaultWorkerConcurrency  = 4

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the service
// default. Fields already set by the caller are left unchanged so explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = DefaultMigrationsSource
	}
	// golang-migrate wants a source URL; a bare directory path is treated
	// as a file:// source.
	if !strings.Contains(cfg.Database.MigrationsDir, "://") {
		cfg.Database.MigrationsDir = "file://" + cfg.Database.MigrationsDir
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultAssessmentCacheTTL
	}

	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.Acks == "" {
		cfg.Kafka.Acks = "all"
	}

	if cfg.Screening.AssessmentCacheTTL == 0 {
		cfg.Screening.AssessmentCacheTTL = DefaultAssessmentCacheTTL
	}
	if cfg.Screening.MetricsNamespace == "" {
		cfg.Screening.MetricsNamespace = DefaultMetricsNamespace
	}
	if cfg.Screening.WorkerConcurrency == 0 {
		cfg.Screening.WorkerConcurrency = DefaultWorkerConcurrency
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
