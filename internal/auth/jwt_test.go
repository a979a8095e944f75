package auth_test

import (
	"errors"
	"testing"
	"time"

	"listen/config"
	"listen/internal/auth"
	"listen/internal/domain"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "listen-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := auth.GenerateAccessToken(cfg, 12, "staff@listen.local", domain.RoleStaff)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := auth.ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 12 || claims.Email != "staff@listen.local" || claims.Role != domain.RoleStaff {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	cfg := testConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := auth.GenerateAccessToken(cfg, 1, "a@b.c", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := auth.ParseAccessToken(cfg, token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestWrongSecretIsRejected(t *testing.T) {
	cfg := testConfig()
	token, err := auth.GenerateAccessToken(cfg, 1, "a@b.c", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	other := testConfig()
	other.AccessSecret = "different-secret"
	if _, err := auth.ParseAccessToken(other, token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestGarbageTokenIsRejected(t *testing.T) {
	if _, err := auth.ParseAccessToken(testConfig(), "not.a.token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
