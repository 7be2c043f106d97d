package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/shared/response"
)

type readiness interface {
	Ready() bool
}

func healthRouter(r readiness) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "UP", "service": "catalog-consumer"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if !r.Ready() {
			response.ServiceUnavailable(c, gin.H{"status": "NOT_READY"})
			return
		}
		response.OK(c, gin.H{"status": "READY"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func startHealthServer(port string, r readiness) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           healthRouter(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Msgf("[Health] Starting health check server on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("[Health] Failed to start")
		}
	}()

	return srv
}

func stopHealthServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("[Health] Forced shutdown")
	}
}
