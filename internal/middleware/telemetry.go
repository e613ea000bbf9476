package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// OtelTracing returns a middleware for OpenTelemetry instrumentation.
// The health probe at / is not traced to reduce overhead.
func OtelTracing(serviceName string) gin.HandlerFunc {
	otelMiddleware := otelgin.Middleware(serviceName)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/" {
			c.Next()
			return
		}
		otelMiddleware(c)
	}
}

// TraceID returns a middleware that adds trace ID to response headers.
// This is useful for correlating logs and traces in distributed systems.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()
			c.Header("X-Trace-Id", traceID)
		}
		c.Next()
	}
}
