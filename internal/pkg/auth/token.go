package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenConfig defines settings for email verification tokens
type TokenConfig struct {
	SecretKey string
	Expiry    time.Duration
	Issuer    string
}

// TokenService issues and validates email verification tokens
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new TokenService
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config}
}

// emailClaims is the JWT payload for verification tokens
type emailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateVerificationToken creates a signed token binding the email address
func (s *TokenService) GenerateVerificationToken(email string) (string, error) {
	now := time.Now()
	claims := &emailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign verification token: %w", err)
	}
	return signed, nil
}

// ParseVerificationToken validates a token and returns the bound email
func (s *TokenService) ParseVerificationToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &emailClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*emailClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}
