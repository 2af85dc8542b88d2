package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Usertype string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User    *domain.User
	Token   string
	Session domain.Session
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, session domain.Session) error
	Authenticate(ctx context.Context, rawToken string) (domain.Session, error)
}
