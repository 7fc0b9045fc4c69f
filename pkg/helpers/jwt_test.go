package helpers

import (
	"testing"
	"time"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate("alice", "Admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiry %v not within configured ttl", until)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Username != "alice" || claims.Role != "Admin" {
		t.Fatalf("claims = %q/%q, want alice/Admin", claims.Username, claims.Role)
	}
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, _, err := issuer.Generate("alice", "Admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestJWTDefaultTTL(t *testing.T) {
	m := NewJWTManager("test-secret", 0)
	_, exp, err := m.Generate("alice", "Admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	until := time.Until(exp)
	if until < DefaultTokenTTL-time.Minute || until > DefaultTokenTTL {
		t.Fatalf("expiry %v, want roughly %v", until, DefaultTokenTTL)
	}
}
