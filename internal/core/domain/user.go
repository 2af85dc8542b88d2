package domain

import (
	"fmt"
	"strings"
	"time"
)

// Usertype distinguishes the three kinds of marketplace accounts.
type Usertype string

const (
	UsertypeFreelancer Usertype = "freelancer"
	UsertypeClient     Usertype = "client"
	UsertypeAdmin      Usertype = "admin"
)

// ParseUsertype normalises s and reports whether it names a known usertype.
func ParseUsertype(s string) (Usertype, error) {
	switch t := Usertype(strings.ToLower(strings.TrimSpace(s))); t {
	case UsertypeFreelancer, UsertypeClient, UsertypeAdmin:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown usertype %q", ErrValidation, s)
	}
}

// User models an account holder. PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Usertype     Usertype  `json:"usertype"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail lower-cases and trims an address so lookups match the unique index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
