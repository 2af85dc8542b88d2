package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// UserRepository defines the persistence operations for accounts.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Delete removes the user; deleting a missing user is not an error.
	Delete(ctx context.Context, id string) error
}
