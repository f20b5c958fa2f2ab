package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// webhookDeliveryHeader carries the storefront's delivery id. Logging it
// lets operators line a request up with the storefront's delivery log
// when a webhook is retried or dropped.
const webhookDeliveryHeader = "X-Shopify-Webhook-Id"

// healthPaths are polled by the orchestrator every few seconds and only
// worth logging when they fail.
var healthPaths = map[string]bool{
	"/api/v1/health":     true,
	"/api/v1/health/erp": true,
}

// GinMiddleware logs each HTTP request with its outcome and stores a
// request-scoped logger in the gin context under "logger".
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID, _ := c.Get("request_id")
		id, _ := requestID.(string)

		reqLog := log.With(
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set("logger", reqLog)

		c.Next()

		status := c.Writer.Status()
		if healthPaths[path] && status < http.StatusInternalServerError {
			return
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes_out", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if delivery := c.GetHeader(webhookDeliveryHeader); delivery != "" {
			fields = append(fields, zap.String("webhook_delivery", delivery))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Error("Request completed", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("Request completed", fields...)
		default:
			reqLog.Info("Request completed", fields...)
		}
	}
}

// Recovery converts handler panics into a 500 and logs the stack. A
// panicking webhook must still answer the storefront, otherwise the
// delivery hangs until the storefront's own timeout.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Get("request_id")
				id, _ := requestID.(string)

				log.Error("Panic recovered",
					zap.String("request_id", id),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GinLogger retrieves the request-scoped logger stored by GinMiddleware,
// or a no-op logger outside a request.
func GinLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
