package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/document-qa/pkg/logger"
)

// AccessLog writes one entry per request once the handler chain returns.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", status),
			logger.Duration("latency", time.Since(start)),
			logger.String("clientIP", c.ClientIP()),
		}

		l := logger.FromContext(c.Request.Context(), log)
		switch {
		case status >= 500:
			l.Error("Request completed", fields...)
		case status >= 400:
			l.Warn("Request completed", fields...)
		default:
			l.Info("Request completed", fields...)
		}
	}
}
