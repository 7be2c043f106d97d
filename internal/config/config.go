package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration shared by every catalog process
// (gateway, domain services, consumer). It is populated from environment
// variables; each process only reads the sections it needs.
type Config struct {
	App      AppConfig
	RPC      RPCConfig
	Events   EventsConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

// RPCConfig describes how the gateway reaches the domain services and how
// the domain services expose themselves.
type RPCConfig struct {
	BookURL       string        // NATS URL serving the book service
	AuthorURL     string        // NATS URL serving the author service
	SubjectPrefix string        // subject = <prefix>.<service>.<Method>
	Timeout       time.Duration // bound for a single call, never retried
}

type EventsConfig struct {
	Driver    string // nats | asynq
	NATSURL   string
	Stream    string
	RedisAddr string // asynq broker

	// consumer process only
	Group       string // durable name
	Concurrency int    // asynq workers
	HealthPort  string
}

type StoreConfig struct {
	Driver   string // memory | postgres
	CacheTTL time.Duration
	UseCache bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

const (
	EventsDriverNATS  = "nats"
	EventsDriverAsynq = "asynq"

	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Load reads config from environment variables
func Load() (*Config, error) {
	timeout, err := getEnvDuration("RPC_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("STORE_CACHE_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	natsURL := getEnv("NATS_URL", "nats://localhost:4222")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Catalog Gateway"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		RPC: RPCConfig{
			BookURL:       getEnv("BOOK_SERVICE_URL", natsURL),
			AuthorURL:     getEnv("AUTHOR_SERVICE_URL", natsURL),
			SubjectPrefix: getEnv("RPC_SUBJECT_PREFIX", "catalog"),
			Timeout:       timeout,
		},
		Events: EventsConfig{
			Driver:      strings.ToLower(getEnv("EVENTS_DRIVER", EventsDriverNATS)),
			NATSURL:     getEnv("EVENTS_NATS_URL", natsURL),
			Stream:      getEnv("EVENTS_STREAM", "CATALOG_EVENTS"),
			RedisAddr:   getEnv("EVENTS_REDIS_ADDR", getEnv("REDIS_HOST", "localhost:6379")),
			Group:       getEnv("EVENTS_GROUP", "book-author-group"),
			Concurrency: getEnvInt("EVENTS_CONCURRENCY", 10),
			HealthPort:  getEnv("EVENTS_HEALTH_PORT", "9999"),
		},

		Store: StoreConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
			CacheTTL: cacheTTL,
			UseCache: getEnvBool("STORE_CACHE_ENABLED", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "catalog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if c.RPC.Timeout <= 0 {
		return fmt.Errorf("RPC_TIMEOUT must be positive")
	}
	if c.RPC.SubjectPrefix == "" {
		return fmt.Errorf("RPC_SUBJECT_PREFIX must not be empty")
	}

	switch c.Events.Driver {
	case EventsDriverNATS, EventsDriverAsynq:
	default:
		return fmt.Errorf("unsupported EVENTS_DRIVER %q", c.Events.Driver)
	}

	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.App.Environment == "production" && c.Store.Driver == StoreDriverPostgres && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return nil
}

// IsProduction reports whether the process runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
