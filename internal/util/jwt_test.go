package util

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("test-secret", "agenda-test", 42, "session-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want session-1", claims.SessionID)
	}
	if claims.Issuer != "agenda-test" {
		t.Errorf("Issuer = %q, want agenda-test", claims.Issuer)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "agenda", 1, "s", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("ParseToken with wrong secret should fail")
	}
}

func TestParseToken_Expired(t *testing.T) {
	// TTL <= 0 falls back to 24h, so use a tiny positive TTL already in the past
	token, err := GenerateToken("secret", "agenda", 1, "s", time.Nanosecond)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := ParseToken("secret", token); err == nil {
		t.Error("ParseToken on expired token should fail")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err == nil {
		t.Error("ParseToken on garbage should fail")
	}
}
