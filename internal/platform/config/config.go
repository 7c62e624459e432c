// Package config builds process configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr string

	Generation GenerationConfig
	Audit      AuditConfig

	// ClassifierRulesPath optionally extends the destructive vocabulary.
	ClassifierRulesPath string

	// BatchConcurrency bounds concurrent items within one batch.
	BatchConcurrency int
}

// GenerationConfig configures the generation backend client.
type GenerationConfig struct {
	Endpoint  string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// AuditConfig selects and configures the audit log backend.
type AuditConfig struct {
	// Backend is one of "file", "postgres", "redis", "kafka", "memory".
	Backend string

	FilePath     string
	PostgresDSN  string
	RedisURL     string
	RedisStream  string
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv reads configuration from REMEDIA_* environment variables, with
// development-friendly defaults.
func FromEnv() Config {
	return Config{
		Addr: getenv("REMEDIA_ADDR", ":8080"),
		Generation: GenerationConfig{
			Endpoint:  os.Getenv("REMEDIA_GENERATION_URL"),
			Model:     os.Getenv("REMEDIA_GENERATION_MODEL"),
			MaxTokens: getint("REMEDIA_GENERATION_MAX_TOKENS", 0),
			Timeout:   getduration("REMEDIA_GENERATION_TIMEOUT", 30*time.Second),
		},
		Audit: AuditConfig{
			Backend:      getenv("REMEDIA_AUDIT_BACKEND", "file"),
			FilePath:     getenv("REMEDIA_AUDIT_LOG", "audit.log"),
			PostgresDSN:  os.Getenv("REMEDIA_POSTGRES_DSN"),
			RedisURL:     os.Getenv("REMEDIA_REDIS_URL"),
			RedisStream:  os.Getenv("REMEDIA_AUDIT_STREAM"),
			KafkaBrokers: getlist("REMEDIA_KAFKA_BROKERS"),
			KafkaTopic:   os.Getenv("REMEDIA_KAFKA_TOPIC"),
		},
		ClassifierRulesPath: os.Getenv("REMEDIA_CLASSIFIER_RULES"),
		BatchConcurrency:    getint("REMEDIA_BATCH_CONCURRENCY", 4),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getlist(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
