package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	Mongo    MongoConfig    `json:"mongo"`
	Kafka    KafkaConfig    `json:"kafka"`
	Tracking TrackingConfig `json:"tracking"`
	Ledger   LedgerConfig   `json:"ledger"`
	APIKey   string         `json:"api_key,omitempty"`
	Webhook  WebhookConfig  `json:"webhook"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	RateLimit       float64       `json:"rate_limit"`
	RateBurst       int           `json:"rate_burst"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`
	Migrate  bool   `json:"migrate"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// DSN is the key=value connection string used by pgxpool.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// URL renders the connection as a URL with the given scheme, e.g. "pgx5" for migrations.
func (p PostgresConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Addr         string        `json:"addr"`
	Password     string        `json:"password,omitempty"`
	DB           int           `json:"db"`
	PoolSize     int           `json:"pool_size"`
	ZoneCacheTTL time.Duration `json:"zone_cache_ttl"`
}

type MongoConfig struct {
	URI            string `json:"uri"`
	Database       string `json:"database"`
	PingCollection string `json:"ping_collection"`
}

type KafkaConfig struct {
	Brokers     []string `json:"brokers"`
	EventsTopic string   `json:"events_topic"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type TrackingConfig struct {
	PingRetention       time.Duration `json:"ping_retention"`
	Workers             int           `json:"workers"`
	QueueSize           int           `json:"queue_size"`
	ZoneRefreshInterval time.Duration `json:"zone_refresh_interval"`
}

type LedgerConfig struct {
	MaxAttempts int `json:"max_attempts"`
}

type WebhookConfig struct {
	URL          string        `json:"url"`
	Disabled     bool          `json:"disabled"`
	MaxRetries   int           `json:"max_retries"`
	RetryBackoff time.Duration `json:"retry_backoff"`
	Timeout      time.Duration `json:"timeout"`
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimit:       getEnvFloat("HTTP_RATE_LIMIT", 10),
			RateBurst:       getEnvInt("HTTP_RATE_BURST", 20),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "disaster_alert"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			Migrate:         getEnvBool("POSTGRES_MIGRATE", true),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        int32(getEnvInt("POSTGRES_MIN_CONNS", 1)),
			MaxConnLifetime: getEnvDuration("POSTGRES_MAX_CONN_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "redis-local:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			ZoneCacheTTL: getEnvDuration("ZONE_CACHE_TTL", 5*time.Minute),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://mongo-local:27017"),
			Database:       getEnv("MONGO_DB", "disaster_alert"),
			PingCollection: getEnv("MONGO_PING_COLLECTION", "location_pings"),
		},
		Kafka: KafkaConfig{
			Brokers:     getEnvList("KAFKA_BROKERS", nil),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "zone-membership-events"),
		},
		Tracking: TrackingConfig{
			PingRetention:       getEnvDuration("PING_RETENTION", 24*time.Hour),
			Workers:             getEnvInt("PING_WORKERS", 8),
			QueueSize:           getEnvInt("PING_QUEUE_SIZE", 1024),
			ZoneRefreshInterval: getEnvDuration("ZONE_REFRESH_INTERVAL", 30*time.Second),
		},
		Ledger: LedgerConfig{
			MaxAttempts: getEnvInt("LEDGER_MAX_ATTEMPTS", 3),
		},
		APIKey: getEnv("API_KEY", ""),
		Webhook: WebhookConfig{
			URL:          getEnv("WEBHOOK_URL", ""),
			Disabled:     getEnvBool("WEBHOOK_DISABLED", false),
			MaxRetries:   getEnvInt("WEBHOOK_MAX_RETRIES", 3),
			RetryBackoff: getEnvDuration("WEBHOOK_RETRY_BACKOFF", time.Second),
			Timeout:      getEnvDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Webhook.Disabled {
		stdLogger.Warn("webhooks disabled via WEBHOOK_DISABLED=true")
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.String("mongo_db", cfg.Mongo.Database),
		slog.Bool("kafka_enabled", cfg.Kafka.Enabled()),
		slog.String("webhook_url", cfg.Webhook.URL))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}

	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI required")
	}

	if c.APIKey == "" {
		return errors.New("API_KEY required")
	}

	if c.Kafka.Enabled() && c.Kafka.EventsTopic == "" {
		return errors.New("KAFKA_EVENTS_TOPIC required when KAFKA_BROKERS is set")
	}

	if c.Tracking.PingRetention <= 0 {
		return errors.New("PING_RETENTION must be positive")
	}

	if c.Tracking.Workers < 1 || c.Tracking.QueueSize < 1 {
		return errors.New("PING_WORKERS and PING_QUEUE_SIZE must be at least 1")
	}

	if c.Ledger.MaxAttempts < 1 {
		return errors.New("LEDGER_MAX_ATTEMPTS must be at least 1")
	}

	if !c.Webhook.Disabled && c.Webhook.URL == "" {
		return errors.New("WEBHOOK_URL required unless WEBHOOK_DISABLED=true")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
