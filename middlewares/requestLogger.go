package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// RequestLogger tags every request with an id and a request-scoped logger,
// then logs the outcome once the handler chain returns.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, requestID)

		logger := base.With("request_id", requestID)
		ctx.Set(loggerKey, logger)

		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.Log(ctx.Request.Context(), level, "request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", ctx.ClientIP(),
		)
	}
}

// Logger returns the request logger, or the default logger outside a request.
func Logger(ctx *gin.Context) *slog.Logger {
	if value, exists := ctx.Get(loggerKey); exists {
		if logger, ok := value.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}
