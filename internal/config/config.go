package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Notifier  NotifierConfig
	Kafka     KafkaConfig
	Matcher   MatcherConfig
	Telemetry TelemetryConfig
	Log       LogConfig

	MigrationsDir string
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	JobCacheTTL time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// NotifierMode selects how the matcher delivers job_match events.
type NotifierMode string

const (
	NotifierModeInProcess NotifierMode = "inprocess"
	NotifierModeHTTP      NotifierMode = "http"
	NotifierModeKafka     NotifierMode = "kafka"
)

type NotifierConfig struct {
	Mode       NotifierMode
	Endpoint   string
	APIKey     string
	APIKeyHash string
	Timeout    time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type MatcherConfig struct {
	Workers   int
	RateLimit int
	// Timeout bounds one detached run started from the HTTP trigger.
	Timeout time.Duration
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
	SampleRatio  float64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func init() {
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("JOB_CACHE_TTL", "10m")
	viper.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	viper.SetDefault("NOTIFIER_MODE", string(NotifierModeInProcess))
	viper.SetDefault("NOTIFIER_TIMEOUT", "5s")
	viper.SetDefault("KAFKA_TOPIC", "jobboard.notification-events")
	viper.SetDefault("KAFKA_GROUP_ID", "jobboard-notifier")
	viper.SetDefault("MATCHER_WORKERS", 8)
	viper.SetDefault("MATCHER_TIMEOUT", "2m")
	viper.SetDefault("OTEL_SERVICE_NAME", "jobboard")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4318")
	viper.SetDefault("OTEL_TRACES_SAMPLER_ARG", 1.0)
	viper.SetDefault("MIGRATIONS_DIR", "")
}

// Load reads configuration from the environment and, when one was set with
// viper.SetConfigFile, from a config file. Environment values win.
func Load() (Config, error) {
	v := viper.GetViper()
	v.AutomaticEnv()
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		val := strings.TrimSpace(v.GetString(key))
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	dur := func(key string) time.Duration {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:        opt("REDIS_HOST"),
		Port:        opt("REDIS_PORT"),
		Password:    v.GetString("REDIS_PASSWORD"),
		DB:          v.GetInt("REDIS_DB"),
		JobCacheTTL: dur("JOB_CACHE_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    opt("JWT_ACCESS_SECRET"),
		AccessExpiresIn: dur("JWT_ACCESS_EXPIRES_IN"),
	}

	cfg.Notifier = NotifierConfig{
		Mode:       NotifierMode(strings.ToLower(opt("NOTIFIER_MODE"))),
		Endpoint:   opt("NOTIFIER_ENDPOINT"),
		APIKey:     opt("NOTIFIER_API_KEY"),
		APIKeyHash: opt("NOTIFIER_API_KEY_HASH"),
		Timeout:    dur("NOTIFIER_TIMEOUT"),
	}
	switch cfg.Notifier.Mode {
	case NotifierModeInProcess:
	case NotifierModeHTTP:
		if cfg.Notifier.Endpoint == "" {
			missing = append(missing, "NOTIFIER_ENDPOINT")
		}
	case NotifierModeKafka:
		if opt("KAFKA_BROKERS") == "" {
			missing = append(missing, "KAFKA_BROKERS")
		}
	default:
		invalid = append(invalid, "NOTIFIER_MODE")
	}

	cfg.Kafka = KafkaConfig{
		Brokers: splitList(opt("KAFKA_BROKERS")),
		Topic:   opt("KAFKA_TOPIC"),
		GroupID: opt("KAFKA_GROUP_ID"),
	}

	cfg.Matcher = MatcherConfig{
		Workers:   v.GetInt("MATCHER_WORKERS"),
		RateLimit: v.GetInt("MATCHER_RATE_LIMIT"),
		Timeout:   dur("MATCHER_TIMEOUT"),
	}
	if cfg.Matcher.Workers <= 0 {
		invalid = append(invalid, "MATCHER_WORKERS")
	}

	cfg.Telemetry = TelemetryConfig{
		Enabled:      v.GetBool("OTEL_ENABLED"),
		OTLPEndpoint: opt("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  opt("OTEL_SERVICE_NAME"),
		SampleRatio:  v.GetFloat64("OTEL_TRACES_SAMPLER_ARG"),
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		invalid = append(invalid, "OTEL_TRACES_SAMPLER_ARG")
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.MigrationsDir = opt("MIGRATIONS_DIR")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
