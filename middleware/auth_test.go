package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloucester-auto/dealership-api/config"
	"github.com/gloucester-auto/dealership-api/services"
)

func setupAuthRouter(t *testing.T, ttl time.Duration) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.InitAuthService(&config.Config{
		AdminUsername: "admin",
		AdminPassword: "hunter22",
		JWTSecret:     "test-secret",
		TokenTTL:      ttl,
	})

	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", RequireAdmin(), func(c *gin.Context) {
		adminID, _ := GetAdminID(c)
		c.JSON(http.StatusOK, gin.H{"adminId": adminID})
	})

	return router, token
}

func TestRequireAdminAllowsValidToken(t *testing.T) {
	router, token := setupAuthRouter(t, time.Hour)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-user")
}

func TestRequireAdminRejectsBadHeaders(t *testing.T) {
	router, token := setupAuthRouter(t, time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bearer with no token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"token without scheme", token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	router, token := setupAuthRouter(t, -time.Minute)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
