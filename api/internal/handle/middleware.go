package handle

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Middleware is the stack every calc-api route runs behind, outermost first.
func Middleware(logger *zap.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		Compression(),
		RequestID(),
		RequestLogger(logger),
		Recovery(logger),
	}
}

// Compression gzips responses for clients that accept it. /metrics is left
// alone: promhttp negotiates its own encoding.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"}))
}

// RequestID tags every response with a fresh UUID and stores it on the context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Set(requestIDKey, id)
	c.Header(headerRequestID, id)
	return id
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// Recovery turns a panic into the regular failure envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Error:   fmt.Sprint(recovered),
			Message: msgFailed,
			Type:    "panic",
		})
	})
}
