package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloucester-auto/dealership-api/config"
	"github.com/gloucester-auto/dealership-api/services"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	services.InitAuthService(&config.Config{
		AdminUsername: "admin",
		AdminPassword: "hunter22",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
	})

	router := gin.New()
	router.POST("/auth/login", Login)
	return router
}

func TestLoginIssuesToken(t *testing.T) {
	router := setupAuthRouter(t)

	w := doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"username": "admin",
		"password": "hunter22",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	// The issued token must verify.
	token := body["token"].(string)
	claims, err := services.GetAuthService().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	router := setupAuthRouter(t)

	w := doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"username": "admin",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", decodeBody(t, w)["error"])
}

func TestLoginRequiresBothFields(t *testing.T) {
	router := setupAuthRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing password", map[string]interface{}{"username": "admin"}},
		{"missing username", map[string]interface{}{"password": "hunter22"}},
		{"empty payload", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/auth/login", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Username and password required", decodeBody(t, w)["error"])
		})
	}
}
