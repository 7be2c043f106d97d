package middleware

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID reuses the caller's X-Request-ID or generates one, echoes it on
// the response and stores it under RequestIDKey for the logger
func RequestID() gin.HandlerFunc {
	return requestid.New(
		requestid.WithGenerator(uuid.NewString),
		requestid.WithHandler(func(c *gin.Context, id string) {
			c.Set(RequestIDKey, id)
		}),
	)
}
