package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/api/authz"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	signed, expires, err := tokens.Issue(authz.AuthUser{ID: 3, Username: "desk", Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expires.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", expires)
	}

	user, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if user.ID != 3 || user.Username != "desk" || !user.IsAdmin() {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	tokens, err := NewTokenIssuer(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	signed, _, err := tokens.Issue(authz.AuthUser{ID: 1, Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := tokens.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	a, _ := NewTokenIssuer(testSecret, time.Hour)
	b, _ := NewTokenIssuer("another-secret-of-enough-length", time.Hour)

	signed, _, err := a.Issue(authz.AuthUser{ID: 1, Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := b.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := a.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestNewTokenIssuerValidates(t *testing.T) {
	if _, err := NewTokenIssuer("short", time.Hour); err == nil {
		t.Fatal("expected short secret to be rejected")
	}
	if _, err := NewTokenIssuer(testSecret, 0); err == nil {
		t.Fatal("expected zero ttl to be rejected")
	}
}
