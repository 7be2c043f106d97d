package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/domains/book/repository"
	"catalog-gateway/internal/domains/book/service"
	"catalog-gateway/internal/infrastructure/messaging"
	"catalog-gateway/internal/rpc"
	"catalog-gateway/pkg/container"
	"catalog-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	store, err := container.NewStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize store")
	}
	defer store.Cleanup()

	conn, err := messaging.ConnectNATS(messaging.DefaultNATSConfig(cfg.RPC.BookURL, "book-service"))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to NATS")
	}
	defer conn.Close()

	srv := rpc.NewServer(conn, model.ServiceName, rpc.WithPrefix(cfg.RPC.SubjectPrefix))
	service.NewBookService(newRepository(cfg, store)).Register(srv)

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start book service")
	}
	log.Info().Str("store", store.Driver).Bool("cache", store.Cache != nil).Msg("🚀 Book service running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down book service...")
	srv.Stop()
	log.Info().Msg("✅ Book service stopped")
}

func newRepository(cfg *config.Config, store *container.Store) repository.Repository {
	var repo repository.Repository
	if store.DB != nil {
		repo = repository.NewPostgresRepository(store.DB.Pool)
	} else {
		repo = repository.NewMemoryRepository()
	}
	if store.Cache != nil {
		repo = repository.NewCachedRepository(repo, store.Cache, cfg.Store.CacheTTL)
	}
	return repo
}
