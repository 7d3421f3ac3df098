package utils

import (
	"testing"
	"time"
)

func TestSignAndParseJWT(t *testing.T) {
	tok, err := SignJWT("secret", "u1", "admin", time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := ParseJWT("secret", tok)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	tok, err := SignJWT("secret", "u1", "end_user", time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := ParseJWT("other", tok); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseJWTExpired(t *testing.T) {
	tok, err := SignJWT("secret", "u1", "end_user", -time.Minute)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := ParseJWT("secret", tok); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
