package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"b24relay/internal/bitrix"
	"b24relay/internal/logger"
	"b24relay/internal/services"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := logger.FromContext(c.Request.Context())
		if len(c.Request.URL.RawQuery) > 0 {
			log.Debug("HTTP Request Params", "params", bitrix.RedactValues(c.Request.URL.Query()))
		}
		c.Next()
		duration := time.Since(start)
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Server Error", fields...)
		} else if c.Writer.Status() >= 400 {
			log.Warn("HTTP Client Error", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
	}
}

// SoftDisableMiddleware коротко замыкает путь приема вебхука, когда бот
// выключен флагом DISABLED. Вешается только на маршрут вебхука, query API
// и админские ручки работают всегда.
func SoftDisableMiddleware(state *services.BotState) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !state.Enabled() {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
