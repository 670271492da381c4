package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/wso2/consent-policy-validator/pkg/utils"
)

// CorrelationIDKey is the gin context key holding the request correlation ID
const CorrelationIDKey = "correlationID"

// Response headers set by the API
const (
	CorrelationIDHeader = "X-Correlation-ID"
	ValidationIDHeader  = "X-Validation-ID"
)

// CorrelationIDMiddleware propagates the caller's correlation ID, or assigns a
// new one, and echoes it in the response
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := extractCorrelationID(c)
		if correlationID == "" {
			correlationID = utils.GenerateCorrelationID()
		}
		c.Set(CorrelationIDKey, correlationID)
		c.Request = c.Request.WithContext(utils.WithCorrelationID(c.Request.Context(), correlationID))
		c.Header(CorrelationIDHeader, correlationID)
		c.Next()
	}
}

func extractCorrelationID(c *gin.Context) string {
	headers := []string{CorrelationIDHeader, "X-Request-ID", "X-Trace-ID"}
	for _, header := range headers {
		if id := c.GetHeader(header); id != "" {
			return id
		}
	}
	return ""
}
