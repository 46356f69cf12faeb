package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
)

// RequestLogger writes one structured line per request. Health checks are
// only logged at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		healthCheck := path == "/health" || path == "/ready"
		if healthCheck && !logger.Enabled("debug") {
			return
		}
		kv := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}
		switch {
		case healthCheck:
			logger.Debugw("request", kv...)
		case c.Writer.Status() >= 500:
			logger.Errorw("request", kv...)
		default:
			logger.Infow("request", kv...)
		}
	}
}
