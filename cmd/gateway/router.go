package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-gateway/internal/shared/middleware"
	"catalog-gateway/internal/shared/response"
	"catalog-gateway/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Metrics(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		c.BookHandler.RegisterRoutes(api)
		c.AuthorHandler.RegisterRoutes(api)
	}

	c.GraphQLHandler.RegisterRoutes(router)

	return router
}

// healthCheckHandler answers 503 while any backend connection or the
// publisher is down
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := c.Health()

		status := "UP"
		for _, ok := range checks {
			if !ok {
				status = "DOWN"
				break
			}
		}

		body := gin.H{
			"status":  status,
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
			"checks":  checks,
		}

		if status != "UP" {
			response.ServiceUnavailable(ctx, body)
			return
		}
		response.Success(ctx, http.StatusOK, body)
	}
}
