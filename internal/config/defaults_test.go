package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultDBHost, cfg.Database.Host)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, DefaultDBName, cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, DefaultMigrationsSource, cfg.Database.MigrationsDir)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultKafkaGroupID, cfg.Kafka.GroupID)
	assert.Equal(t, "all", cfg.Kafka.Acks)
	assert.Equal(t, DefaultAssessmentCacheTTL, cfg.Screening.AssessmentCacheTTL)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Screening.MetricsNamespace)
	assert.Equal(t, DefaultWorkerConcurrency, cfg.Screening.WorkerConcurrency)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Log.Level = "debug"
	cfg.Screening.AssessmentCacheTTL = time.Minute
	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Screening.AssessmentCacheTTL)
}

func TestApplyDefaults_NilConfig(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestApplyDefaults_MigrationsSourceURL(t *testing.T) {
	cfg := &Config{}
	cfg.Database.MigrationsDir = "db/migrations"
	ApplyDefaults(cfg)
	assert.Equal(t, "file://db/migrations", cfg.Database.MigrationsDir)

	cfg = &Config{}
	cfg.Database.MigrationsDir = "file:///opt/screening/migrations"
	ApplyDefaults(cfg)
	assert.Equal(t, "file:///opt/screening/migrations", cfg.Database.MigrationsDir)
}
