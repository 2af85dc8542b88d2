package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// UpdateProfileInput is the editable part of a freelancer profile.
type UpdateProfileInput struct {
	FreelancerID string
	Skills       []string
	Description  string
}

type ProfileService interface {
	FetchProfile(ctx context.Context, userID string) (*domain.FreelancerProfile, error)
	UpdateProfile(ctx context.Context, session domain.Session, input UpdateProfileInput) (*domain.FreelancerProfile, error)
}
