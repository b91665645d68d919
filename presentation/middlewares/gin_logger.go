package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"go.uber.org/zap"
)

func GinLogger(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		if values := c.Request.URL.Query(); values.Has("token") {
			values.Set("token", "redacted")
			query = values.Encode()
		}

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if userID, ok := GetUserID(c); ok {
			fields = append(fields, zap.String("userID", userID))
		}

		if len(c.Errors) > 0 {
			logger.Error("Request error", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Info("Request", fields...)
	}
}
