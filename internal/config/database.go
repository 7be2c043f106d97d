package config

import (
	"time"

	"catalog-gateway/internal/infrastructure/database"
)

// DBConfig converts the Database section into the pool settings used
// by infrastructure/database. Retry and lifetime tuning is read here because
// only the domain services talk to Postgres.
func (c *Config) DBConfig() (*database.DBConfig, error) {
	maxConnLifetime, err := getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	maxConnIdleTime, err := getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute)
	if err != nil {
		return nil, err
	}
	healthCheckPeriod, err := getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute)
	if err != nil {
		return nil, err
	}
	retryDelay, err := getEnvDuration("DB_RETRY_DELAY", time.Second)
	if err != nil {
		return nil, err
	}
	connectTimeout, err := getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		Host:              c.Database.Host,
		Port:              c.Database.Port,
		Username:          c.Database.User,
		Password:          c.Database.Password,
		DBName:            c.Database.Database,
		SSLMode:           c.Database.SSLMode,
		MaxConns:          int32(c.Database.MaxConns),
		MinConns:          int32(c.Database.MinConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
	}, nil
}
