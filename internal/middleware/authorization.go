package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"tarra_waitlist/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Authorization struct {
	adminToken string
}

func NewAuthorization(adminToken string) *Authorization {
	return &Authorization{
		adminToken: adminToken,
	}
}

// AdminOnly gates the audit and seeding surface behind a static bearer
// token. The token protects participant PII, so an unconfigured token locks
// the routes instead of opening them.
func (a *Authorization) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		if a.adminToken == "" {
			log.Error("admin token is not configured")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access disabled"})
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			log.Info("unauthorized access attempt to admin endpoint",
				zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		c.Next()
	}
}
