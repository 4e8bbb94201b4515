package middleware

import (
	"net/http"
	"time"

	"corp-social-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog writes one access log line per request. Client and server
// errors are logged at error level.
func RequestLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("remote_addr", c.ClientIP()),
			zap.String("host", c.Request.Host),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("run_time", time.Since(start)),
			zap.String("request_id", c.GetString(string(domain.KeyRequestID))),
		}
		if userID := c.GetString(string(domain.KeyUserID)); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		if status >= http.StatusBadRequest {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
