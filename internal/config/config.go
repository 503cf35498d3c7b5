package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	Cache    CacheConfig    `json:"cache"`
	Matching MatchingConfig `json:"matching"`
	Stream   StreamConfig   `json:"stream"`
	Webhook  WebhookConfig  `json:"webhook"`
	APIKey   string         `json:"api_key,omitempty"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type CacheConfig struct {
	TTL          time.Duration `json:"ttl"`
	RetryBackoff time.Duration `json:"retry_backoff"`
	KeyPrefix    string        `json:"key_prefix"`
}

type MatchingConfig struct {
	DefaultRadiusKM float64 `json:"default_radius_km"`
	DefaultLimit    int     `json:"default_limit"`
	MaxLimit        int     `json:"max_limit"`
}

type StreamConfig struct {
	HeartbeatInterval time.Duration `json:"heartbeat_interval"`
	DefaultRadiusKM   float64       `json:"default_radius_km"`
	BusChannel        string        `json:"bus_channel"`
}

type WebhookConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
	QueueKey string `json:"queue_key"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			// zero by default: the alert stream holds connections open
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "bloodlink_db"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			TTL:          getEnvDuration("CACHE_TTL", 120*time.Second),
			RetryBackoff: getEnvDuration("CACHE_RETRY_BACKOFF", 30*time.Second),
			KeyPrefix:    getEnv("CACHE_KEY_PREFIX", "matching:"),
		},
		Matching: MatchingConfig{
			DefaultRadiusKM: getEnvFloat("MATCHING_DEFAULT_RADIUS_KM", 10),
			DefaultLimit:    getEnvInt("MATCHING_DEFAULT_LIMIT", 50),
			MaxLimit:        getEnvInt("MATCHING_MAX_LIMIT", 200),
		},
		Stream: StreamConfig{
			HeartbeatInterval: getEnvDuration("STREAM_HEARTBEAT_INTERVAL", 25*time.Second),
			DefaultRadiusKM:   getEnvFloat("STREAM_DEFAULT_RADIUS_KM", 5),
			BusChannel:        getEnv("STREAM_BUS_CHANNEL", "alerts:broadcast"),
		},
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", false),
			QueueKey: getEnv("WEBHOOK_QUEUE_KEY", "webhooks:queue"),
		},
		APIKey: getEnv("API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}
	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if c.Matching.DefaultRadiusKM <= 0 || c.Stream.DefaultRadiusKM <= 0 {
		return errors.New("default radius must be positive")
	}
	if !c.Webhook.Disabled && c.Webhook.URL == "" {
		// no URL means the sender never starts; that is a valid deployment
		c.Webhook.Disabled = true
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
