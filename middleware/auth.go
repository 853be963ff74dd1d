package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gloucester-auto/dealership-api/services"
)

// RequireAdmin guards mutating routes with the admin bearer token. A missing,
// malformed, invalid, or expired token aborts the request with 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		claims, err := services.GetAuthService().ValidateToken(token)
		if err != nil {
			logrus.WithError(err).Debug("Rejected admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("adminId", claims.AdminID)
		c.Set("adminUsername", claims.Username)
		c.Next()
	}
}

// extractBearerToken pulls the token out of an "Authorization: Bearer <token>"
// header.
func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("malformed authorization header")
	}

	return parts[1], nil
}

// GetAdminID extracts the authenticated admin id from the Gin context.
func GetAdminID(c *gin.Context) (string, bool) {
	id, exists := c.Get("adminId")
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok
}
