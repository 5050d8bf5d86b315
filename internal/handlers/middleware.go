package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	headerRequestID  = "X-Request-ID"
	headerManagerPIN = "X-Manager-PIN"
	requestIDKey     = "request_id"
)

// RequestID keeps an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logging writes one log entry per request.
func Logging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					zap.String("request_id", requestID(c)),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "INTERNAL"})
			}
		}()
		c.Next()
	}
}

// ManagerPIN guards menu management with a bcrypt-hashed PIN sent in
// X-Manager-PIN. An empty hash disables the check.
func ManagerPIN(pinHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinHash == "" {
			c.Next()
			return
		}
		pin := c.GetHeader(headerManagerPIN)
		if pin == "" || bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Manager PIN required", "code": "UNAUTHORIZED"})
			return
		}
		c.Next()
	}
}
