package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gloucester-auto/dealership-api/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
)

// AdminClaims are the JWT claims carried by an admin bearer token.
type AdminClaims struct {
	AdminID  string `json:"adminId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies admin bearer tokens. This is a
// single-tenant system: there is exactly one configured admin credential
// pair and no per-user identity.
type AuthService struct {
	username     string
	password     string
	passwordHash string
	secret       []byte
	tokenTTL     time.Duration
}

var authServiceInstance *AuthService

// InitAuthService initializes the auth service from the app configuration.
func InitAuthService(cfg *config.Config) *AuthService {
	authServiceInstance = &AuthService{
		username:     cfg.AdminUsername,
		password:     cfg.AdminPassword,
		passwordHash: cfg.AdminPasswordHash,
		secret:       []byte(cfg.JWTSecret),
		tokenTTL:     cfg.TokenTTL,
	}
	return authServiceInstance
}

// GetAuthService returns the initialized auth service instance
func GetAuthService() *AuthService {
	return authServiceInstance
}

// SetAuthService sets the auth service instance (primarily for testing)
func SetAuthService(s *AuthService) {
	authServiceInstance = s
}

// Login checks the supplied credentials against the configured admin pair
// and returns a signed bearer token on success.
func (s *AuthService) Login(username, password string) (string, error) {
	if !s.checkCredentials(username, password) {
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken(username)
}

func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	if s.passwordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK
}

// GenerateToken signs a time-limited HS256 token for the admin.
func (s *AuthService) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		AdminID:  "admin-user",
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry of a bearer token and
// returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
