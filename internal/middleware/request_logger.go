package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/pkg/logger"
)

// RequestLogger logs every request with its method, path, status and latency.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		logger.Info("request",
			logger.String("method", ctx.Request.Method),
			logger.String("path", ctx.Request.URL.Path),
			logger.Int("status", ctx.Writer.Status()),
			logger.Duration("latency", time.Since(start)))
	}
}
