package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/pkg/jwt"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"go.uber.org/zap"
)

// InternalAPITokenHeader carries the shared secret of internal callers
const InternalAPITokenHeader = "x-internal-talentmap-api-auth-token"

// InternalAPIAuthMiddleware validates the internal API token
func InternalAPIAuthMiddleware(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(InternalAPITokenHeader)

		if token == "" || validToken == "" || !jwt.TimingSafeCompare(token, validToken) {
			logger.Warn("Invalid internal API token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing internal API token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
