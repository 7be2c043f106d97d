package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/events"
	"catalog-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	log.Info().Msg("============================================")
	log.Info().Str("driver", cfg.Events.Driver).Msg("🚀 Catalog Event Consumer Starting...")
	log.Info().Msg("============================================")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := newConsumer(cfg.Events)
	if err != nil {
		log.Fatal().Err(err).Msg("[Startup] Failed to create consumer")
	}
	defer consumer.Close()

	if err := consumer.Start(ctx, events.LogRecord); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Failed to start consumer")
	}

	health := startHealthServer(cfg.Events.HealthPort, consumer)

	waitForShutdown()

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	consumer.Stop()
	stopHealthServer(health)
	log.Info().Msg("[Shutdown] ✓ Stopped")
}

func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}
