// Package config builds runtime configuration from environment variables so
// main stays lean. Every value has a development default; production
// deployments override via env.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures top-level service configuration.
type Server struct {
	Addr string

	// PostgresDSN points at the registry snapshot database. Empty means the
	// in-memory registry store is used (dev / tests).
	PostgresDSN string

	// Redis caches computed risk assessments. Empty disables caching.
	Redis RedisConfig

	// KafkaBrokers enables the Kafka audit publisher when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// JWTSigningKey enables bearer-token auth on the intelligence endpoints
	// when non-empty.
	JWTSigningKey string

	// FetchTimeout bounds every upstream registry fetch. A timeout counts as
	// a failed category fetch and degrades that category only.
	FetchTimeout time.Duration

	// AssessmentCacheTTL enforces retention for cached risk assessments.
	AssessmentCacheTTL time.Duration
}

// RedisConfig holds connection settings for the go-redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:               envString("KYNTEL_ADDR", ":8080"),
		PostgresDSN:        os.Getenv("KYNTEL_POSTGRES_DSN"),
		AuditTopic:         envString("KYNTEL_AUDIT_TOPIC", "kyntel.audit.v1"),
		JWTSigningKey:      os.Getenv("KYNTEL_JWT_SIGNING_KEY"),
		FetchTimeout:       envDuration("KYNTEL_FETCH_TIMEOUT", 5*time.Second),
		AssessmentCacheTTL: envDuration("KYNTEL_ASSESSMENT_CACHE_TTL", 15*time.Minute),
		Redis: RedisConfig{
			URL:          os.Getenv("KYNTEL_REDIS_URL"),
			PoolSize:     envInt("KYNTEL_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("KYNTEL_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("KYNTEL_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("KYNTEL_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("KYNTEL_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}

	if brokers := os.Getenv("KYNTEL_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
