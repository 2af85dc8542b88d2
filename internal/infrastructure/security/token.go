package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sbworks/marketplace/internal/core/domain"
)

const issuer = "sb-works"

type sessionClaims struct {
	Usertype string `json:"usertype"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 session tokens. Every token carries a unique ID
// so it can be revoked individually on logout.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(user *domain.User) (string, domain.Session, error) {
	now := t.now()
	session := domain.Session{
		UserID:    user.ID,
		Usertype:  user.Usertype,
		Username:  user.Username,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(t.ttl).Truncate(time.Second),
	}

	claims := sessionClaims{
		Usertype: string(user.Usertype),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, session, nil
}

// Parse verifies raw and returns the session it encodes. Every failure is
// reported as domain.ErrUnauthorized.
func (t *TokenIssuer) Parse(raw string) (domain.Session, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !tkn.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Session{}, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
		}
		return domain.Session{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.Subject == "" || claims.ID == "" {
		return domain.Session{}, fmt.Errorf("%w: incomplete token", domain.ErrUnauthorized)
	}

	return domain.Session{
		UserID:    claims.Subject,
		Usertype:  domain.Usertype(claims.Usertype),
		Username:  claims.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
