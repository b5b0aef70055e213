// Package config loads runtime configuration for objgraph: connection
// settings from the environment, and named policy sets from YAML.
package config

import (
	"os"
	"strconv"
)

// Config holds the environment-derived settings needed to wire a
// contentstore.Store, pkg/signing, pkg/observability, and the default
// hash algorithm.
type Config struct {
	LogLevel             string
	HashAlgorithm        string // "blake3" (default) or "blake2b-256"
	DatabaseURL          string
	S3Bucket             string
	S3Region             string
	RedisAddr            string
	JWTSigningKey        string
	OTLPEndpoint         string
	ObservabilityEnabled bool
	SQLiteStorePath      string
}

// Load loads configuration from environment variables, applying the
// same development-friendly defaults pattern used throughout this
// repository's other env-backed config.
func Load() *Config {
	logLevel := os.Getenv("OBJGRAPH_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	hashAlgorithm := os.Getenv("OBJGRAPH_HASH_ALGORITHM")
	if hashAlgorithm == "" {
		hashAlgorithm = "blake3"
	}

	dbURL := os.Getenv("OBJGRAPH_DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://objgraph@localhost:5432/objgraph?sslmode=disable"
	}

	redisAddr := os.Getenv("OBJGRAPH_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	otlpEndpoint := os.Getenv("OBJGRAPH_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	sqliteStorePath := os.Getenv("OBJGRAPH_SQLITE_PATH")
	if sqliteStorePath == "" {
		sqliteStorePath = "objtreectl.db"
	}

	observabilityEnabled, _ := strconv.ParseBool(os.Getenv("OBJGRAPH_OTEL_ENABLED"))

	return &Config{
		LogLevel:             logLevel,
		HashAlgorithm:        hashAlgorithm,
		DatabaseURL:          dbURL,
		S3Bucket:             os.Getenv("OBJGRAPH_S3_BUCKET"),
		S3Region:             os.Getenv("OBJGRAPH_S3_REGION"),
		RedisAddr:            redisAddr,
		JWTSigningKey:        os.Getenv("OBJGRAPH_JWT_SIGNING_KEY"),
		OTLPEndpoint:         otlpEndpoint,
		ObservabilityEnabled: observabilityEnabled,
		SQLiteStorePath:      sqliteStorePath,
	}
}
