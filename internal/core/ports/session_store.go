package ports

import (
	"context"
	"time"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// SessionStore tracks revoked session tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, domain.Session, error)
	Parse(raw string) (domain.Session, error)
}
