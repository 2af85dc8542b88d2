package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sbworks/marketplace/internal/core/domain"
)

var alice = &domain.User{ID: "u1", Username: "alice", Usertype: domain.UsertypeFreelancer}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	iss := NewTokenIssuer("secret", time.Hour)

	raw, issued, err := iss.Issue(alice)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := iss.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.UserID != "u1" || got.Usertype != domain.UsertypeFreelancer || got.Username != "alice" {
		t.Fatalf("unexpected session %+v", got)
	}
	if got.TokenID == "" || got.TokenID != issued.TokenID {
		t.Fatalf("expected token id %q, got %q", issued.TokenID, got.TokenID)
	}
	if !got.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Fatalf("expected expiry %v, got %v", issued.ExpiresAt, got.ExpiresAt)
	}
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	iss := NewTokenIssuer("secret", time.Hour)

	_, a, _ := iss.Issue(alice)
	_, b, _ := iss.Issue(alice)
	if a.TokenID == b.TokenID {
		t.Fatalf("expected distinct token ids")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	iss := NewTokenIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, _, err := iss.Issue(alice)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	iss.now = time.Now
	if _, err := iss.Parse(raw); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	raw, _, _ := NewTokenIssuer("secret", time.Hour).Issue(alice)

	if _, err := NewTokenIssuer("other", time.Hour).Parse(raw); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1",
		"jti": "x",
		"iss": issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenIssuer("secret", time.Hour).Parse(raw); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenIssuer_Garbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret", time.Hour).Parse("not.a.jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
