package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

// AuthService implements registration, login and session checks.
type AuthService struct {
	users    ports.UserRepository
	profiles ports.FreelancerRepository
	tx       ports.Transactor
	tokens   ports.TokenIssuer
	sessions ports.SessionStore
	events   ports.EventPublisher
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.FreelancerRepository,
	tx ports.Transactor,
	tokens ports.TokenIssuer,
	sessions ports.SessionStore,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		tx:       tx,
		tokens:   tokens,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// Register creates the account and, for freelancers, the linked profile as a
// single unit of work. If the unit fails after the user row was written, the
// user is deleted again so no freelancer is left without a profile.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	usertype, err := domain.ParseUsertype(in.Usertype)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Usertype:     usertype,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *domain.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		u, err := s.users.Create(ctx, user)
		if err != nil {
			return err
		}
		created = u
		if u.Usertype != domain.UsertypeFreelancer {
			return nil
		}
		if _, err := s.profiles.Create(ctx, domain.NewFreelancerProfile(u.ID, now)); err != nil {
			return fmt.Errorf("create freelancer profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if created != nil {
			s.compensate(ctx, created.ID)
		}
		if !errors.Is(err, domain.ErrEmailTaken) {
			s.logger.Error().Err(err).Str("usertype", string(usertype)).Msg("registration failed")
		}
		return nil, err
	}

	token, session, err := s.tokens.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("usertype", string(created.Usertype)).Msg("user registered")
	s.publish(ctx, domain.NewEvent(domain.EventUserRegistered, created.ID, map[string]any{
		"username": created.Username,
		"usertype": string(created.Usertype),
	}))

	return &ports.AuthResult{User: created, Token: token, Session: session}, nil
}

// compensate removes a user whose registration did not complete. Inside a
// rolled-back transaction the user is already gone and the delete is a no-op.
func (s *AuthService) compensate(ctx context.Context, userID string) {
	if err := s.users.Delete(context.WithoutCancel(ctx), userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to roll back partial registration")
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, session, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.AuthResult{User: user, Token: token, Session: session}, nil
}

// Logout revokes the session's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if session.TokenID == "" {
		return domain.ErrUnauthorized
	}
	if err := s.sessions.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return fmt.Errorf("%w: revoke session: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// Authenticate verifies a raw bearer token and rejects revoked sessions.
// A session store outage fails closed.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (domain.Session, error) {
	session, err := s.tokens.Parse(rawToken)
	if err != nil {
		return domain.Session{}, err
	}

	revoked, err := s.sessions.IsRevoked(ctx, session.TokenID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session revocation check failed")
		return domain.Session{}, fmt.Errorf("%w: session store", domain.ErrUnavailable)
	}
	if revoked {
		return domain.Session{}, fmt.Errorf("%w: session revoked", domain.ErrUnauthorized)
	}
	return session, nil
}

func (s *AuthService) publish(ctx context.Context, evt domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("event", evt.Type).Msg("failed to publish event")
	}
}
