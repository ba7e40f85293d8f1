package auth

import (
	"testing"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "bliss-store-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateAccessToken(cfg, 42, "shopper@example.com", "CUSTOMER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "shopper@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "CUSTOMER" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestAccessTokenWrongSecretRejected(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 1, "a@example.com", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := testJWTConfig()
	other.AccessSecret = "different-secret"
	if _, err := ParseAccessToken(other, token); err != ErrInvalidToken {
		t.Errorf("ParseAccessToken with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestAccessTokenExpiredRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, 1, "a@example.com", "CUSTOMER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err != ErrInvalidToken {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateRefreshToken(cfg, 99)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	userID, err := ParseRefreshToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if userID != 99 {
		t.Errorf("userID = %d, want 99", userID)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	cfg := testJWTConfig()
	refresh, err := GenerateRefreshToken(cfg, 5)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := ParseAccessToken(cfg, refresh); err != ErrInvalidToken {
		t.Errorf("refresh token accepted as access token, error = %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := ParseAccessToken(cfg, "not-a-token"); err != ErrInvalidToken {
		t.Errorf("garbage access token error = %v, want ErrInvalidToken", err)
	}
	if _, err := ParseRefreshToken(cfg, "not-a-token"); err != ErrInvalidToken {
		t.Errorf("garbage refresh token error = %v, want ErrInvalidToken", err)
	}
}
