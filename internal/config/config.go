package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	OTEL    OTELConfig
	Cache   CacheConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	BodyLimitMB     int
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds the HMAC secret used to verify bearer tokens
type JWTConfig struct {
	Secret string
}

// OTELConfig holds OpenTelemetry exporter configuration
type OTELConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceName    string
	ServiceVersion string
	Environment    string
	InstanceID     string
	Token          string
}

// CacheConfig holds TTLs for derived dashboards and idempotent replays
type CacheConfig struct {
	OverviewTTL    time.Duration
	DailyStatsTTL  time.Duration
	IdempotencyTTL time.Duration
}

// LogConfig selects the zap logger flavour
type LogConfig struct {
	Level       string
	Development bool
}

// Load reads configuration from environment variables.
// It attempts to load from .env file first, then falls back to system env vars.
// Keys map to env names by upper-casing and replacing dots, so "mongodb.uri"
// is read from MONGODB_URI.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// PORT is what most platforms inject
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			BodyLimitMB:     v.GetInt("server.body_limit_mb"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("mongodb.uri"),
			Database: v.GetString("mongodb.database"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		OTEL: OTELConfig{
			Enabled:        v.GetBool("otel.enabled"),
			Endpoint:       v.GetString("otel.endpoint"),
			ServiceName:    v.GetString("otel.service_name"),
			ServiceVersion: v.GetString("otel.service_version"),
			Environment:    v.GetString("otel.environment"),
			InstanceID:     v.GetString("otel.instance_id"),
			Token:          v.GetString("otel.token"),
		},
		Cache: CacheConfig{
			OverviewTTL:    v.GetDuration("cache.overview_ttl"),
			DailyStatsTTL:  v.GetDuration("cache.daily_stats_ttl"),
			IdempotencyTTL: v.GetDuration("cache.idempotency_ttl"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.body_limit_mb", 1)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "nutrimetrics")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", "nutrimetrics-api")
	v.SetDefault("otel.service_version", "dev")
	v.SetDefault("otel.environment", "development")
	v.SetDefault("otel.instance_id", "")
	v.SetDefault("otel.token", "")

	v.SetDefault("cache.overview_ttl", 10*time.Minute)
	v.SetDefault("cache.daily_stats_ttl", 5*time.Minute)
	v.SetDefault("cache.idempotency_ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("SERVER_BODY_LIMIT_MB must be positive")
	}
	if c.OTEL.Enabled && c.OTEL.Endpoint == "" {
		return fmt.Errorf("OTEL_ENDPOINT is required when OTEL_ENABLED is true")
	}
	return nil
}
