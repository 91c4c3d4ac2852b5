package config

import (
	"errors"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobboard")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Notifier.Mode != NotifierModeInProcess {
		t.Fatalf("expected inprocess mode, got %q", cfg.Notifier.Mode)
	}
	if cfg.Matcher.Workers != 8 {
		t.Fatalf("expected 8 matcher workers, got %d", cfg.Matcher.Workers)
	}
	if cfg.Matcher.Timeout != 2*time.Minute {
		t.Fatalf("expected 2m matcher timeout, got %s", cfg.Matcher.Timeout)
	}
	if cfg.Redis.JobCacheTTL != 10*time.Minute {
		t.Fatalf("expected 10m job cache ttl, got %s", cfg.Redis.JobCacheTTL)
	}
	if cfg.Kafka.Topic == "" {
		t.Fatalf("expected default kafka topic")
	}
}

func TestLoad_HTTPModeRequiresEndpoint(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("NOTIFIER_MODE", "http")
	t.Setenv("NOTIFIER_ENDPOINT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("NOTIFIER_MODE", "carrier-pigeon")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestLoad_KafkaBrokers(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("NOTIFIER_MODE", "kafka")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Brokers[0] != "kafka-1:9092" || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("NOTIFIER_TIMEOUT", "soon")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestLoad_MatcherTimeout(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MATCHER_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matcher.Timeout != 45*time.Second {
		t.Fatalf("expected 45s matcher timeout, got %s", cfg.Matcher.Timeout)
	}
}
