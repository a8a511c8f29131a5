package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all service settings.
const envPrefix = "SCREEN"

// newViper builds a pre-configured viper instance: YAML file type, SCREEN_
// env prefix, automatic env binding, and a key replacer mapping "." to "_"
// so nested keys like "database.host" resolve to "SCREEN_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindKeys(v)
	return v
}

// bindKeys registers every config key with viper so environment-only values
// survive Unmarshal.
func bindKeys(v *viper.Viper) {
	keys := []string{
		"server.port", "server.mode", "server.read_timeout",
		"server.write_timeout", "server.shutdown_timeout",
		"server.cors.enabled", "server.cors.allowed_origins",
		"server.cors.allowed_methods", "server.cors.allowed_headers",
		"server.cors.allow_credentials", "server.cors.max_age",
		"database.host", "database.port", "database.user",
		"database.password", "database.db_name", "database.ssl_mode",
		"database.max_conns", "database.min_conns",
		"database.conn_max_lifetime", "database.conn_max_idle_time",
		"database.migrations_dir",
		"redis.addr", "redis.password", "redis.db", "redis.pool_size",
		"redis.min_idle_conns", "redis.dial_timeout", "redis.read_timeout",
		"redis.write_timeout", "redis.default_ttl", "redis.key_prefix",
		"kafka.brokers", "kafka.group_id", "kafka.acks",
		"kafka.producer_retries", "kafka.batch_size", "kafka.batch_timeout",
		"screening.profile_dir", "screening.assessment_cache_ttl",
		"screening.publish_events", "screening.metrics_namespace",
		"screening.worker_concurrency",
		"log.level", "log.format", "log.output",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges any SCREEN_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from SCREEN_* environment variables
// with no config file required. Preferred for containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// MustLoad wraps Load and panics on any error. Intended for main() where a
// config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
