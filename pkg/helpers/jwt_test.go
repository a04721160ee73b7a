package helpers

import (
	"testing"
	"time"
)

func newTestJWT(accessTTL, refreshTTL time.Duration) *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", accessTTL, refreshTTL)
}

func TestJWT_GenerateAndParse(t *testing.T) {
	t.Parallel()

	m := newTestJWT(time.Hour, 2*time.Hour)
	tok, _, err := m.GenerateAccessToken("u1", "alice@x.com", "sid-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "alice@x.com" || claims.SessionID != "sid-1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.Subject != "u1" {
		t.Fatalf("subject = %q, want u1", claims.Subject)
	}
}

func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	m := newTestJWT(-time.Second, time.Hour)
	tok, _, err := m.GenerateAccessToken("u1", "a@x.com", "sid")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := m.ParseAccessToken(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	t.Parallel()

	m := newTestJWT(time.Hour, time.Hour)
	tok, _, err := m.GenerateAccessToken("u1", "a@x.com", "sid")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	// A refresh token is signed with a different secret; parsing it as an
	// access token must fail.
	if _, err := NewJWTManager("other", "other", time.Hour, time.Hour).ParseAccessToken(tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
	refresh, _, err := m.GenerateRefreshToken("u1", "a@x.com", "sid")
	if err != nil {
		t.Fatalf("GenerateRefreshToken error: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestJWT_Malformed(t *testing.T) {
	t.Parallel()

	m := newTestJWT(time.Hour, time.Hour)
	if _, err := m.ParseAccessToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
	if _, err := m.ParseAccessToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
