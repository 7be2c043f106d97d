package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/config"
	infraCache "catalog-gateway/internal/infrastructure/cache"
	"catalog-gateway/internal/infrastructure/database"
)

// Store holds the storage infrastructure of a domain service process.
// DB is nil for the memory driver, Cache is nil unless caching is enabled
// and Redis answered at startup.
type Store struct {
	Driver string
	DB     *database.PostgresDB
	Cache  *infraCache.RedisCache
}

// NewStore connects the record store selected by STORE_DRIVER. A Postgres
// failure is fatal, a Redis failure only disables caching.
func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	s := &Store{Driver: cfg.Store.Driver}

	if cfg.Store.Driver == config.StoreDriverPostgres {
		log.Info().Msg("🗄️  Connecting to PostgreSQL...")

		dbConfig, err := cfg.DBConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("database health check failed: %w", err)
		}

		s.DB = db
		log.Info().Msg("✅ Database connected")
	}

	if cfg.Store.UseCache {
		log.Info().Msg("🔴 Connecting to Redis...")

		rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), caching disabled")
			_ = rc.Close()
		} else {
			s.Cache = rc
		}
	}

	return s, nil
}

// Cleanup is safe to call more than once
func (s *Store) Cleanup() {
	if s.DB != nil {
		s.DB.Close()
		s.DB = nil
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
		s.Cache = nil
	}
}
