package middleware

import (
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

// RequestIDMiddleware assigns a unique request ID to each incoming HTTP request.
// A client supplied ID is kept unless it is oversized.
func RequestIDMiddleware() gin.HandlerFunc {
	assign := requestid.New(
		requestid.WithGenerator(func() string {
			return uuid.New().String()
		}),
		requestid.WithCustomHeaderStrKey(RequestIDHeader),
		requestid.WithHandler(func(c *gin.Context, requestID string) {
			c.Set(RequestIDKey, requestID)
			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				hub.ConfigureScope(func(scope *sentry.Scope) {
					scope.SetTag(RequestIDKey, requestID)
				})
			}
		}),
	)

	return func(c *gin.Context) {
		if len(c.GetHeader(RequestIDHeader)) > maxRequestIDLength {
			c.Request.Header.Del(RequestIDHeader)
		}
		assign(c)
	}
}

// GetRequestID retrieves the request ID from the Gin context.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
