package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tilmock/cefr-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		BcryptCost:         bcrypt.MinCost,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService(authConfig())

	hash, err := svc.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := svc.CheckPassword(hash, "password123"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewAuthService(authConfig())

	pair, err := svc.GenerateTokenPair(42, "user@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair.TokenType != "bearer" {
		t.Errorf("token type = %q, want bearer", pair.TokenType)
	}
	if pair.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in = %d", pair.ExpiresIn)
	}

	claims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "user@example.com" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("access token type = %q", claims.TokenType)
	}

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if refresh.TokenType != TokenTypeRefresh {
		t.Errorf("refresh token type = %q", refresh.TokenType)
	}
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := NewAuthService(authConfig())

	pair, err := svc.GenerateTokenPair(1, "a@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("access token on refresh path: got %v, want ErrInvalidRefreshToken", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(authConfig())
	other := NewAuthService(&config.Config{
		JWTSecret:          "other-secret",
		BcryptCost:         bcrypt.MinCost,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})

	pair, err := other.GenerateTokenPair(1, "a@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := svc.ValidateToken(pair.AccessToken); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := authConfig()
	cfg.AccessTokenExpiry = -time.Minute
	svc := NewAuthService(cfg)

	pair, err := svc.GenerateTokenPair(1, "a@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := svc.ValidateToken(pair.AccessToken); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expired token: got %v, want jwt.ErrTokenExpired", err)
	}
}
