package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const requestLoggerKey = "requestLogger"

// SlogLoggerMiddleware 为每个请求派生一个带 correlation_id/method/path
// 的 slog.Logger，并在请求结束时输出访问日志。
func SlogLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		requestLogger := logger.With(
			slog.String("correlation_id", GetCorrelationID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
		)
		c.Set(requestLoggerKey, requestLogger)

		start := time.Now()
		c.Next()

		requestLogger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// LoggerFromContext 返回请求范围的 slog.Logger，缺省时回落到全局。
func LoggerFromContext(c *gin.Context) *slog.Logger {
	if value, ok := c.Get(requestLoggerKey); ok {
		if logger, ok := value.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}
