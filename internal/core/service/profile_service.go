package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

type ProfileService struct {
	profiles ports.FreelancerRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.FreelancerRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// FetchProfile returns the profile owned by userID.
func (s *ProfileService) FetchProfile(ctx context.Context, userID string) (*domain.FreelancerProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	return s.profiles.FindByUserID(ctx, userID)
}

// UpdateProfile replaces skills and description. Only the profile owner or an
// admin may do so; the freelancer ID in the request is never trusted alone.
func (s *ProfileService) UpdateProfile(ctx context.Context, session domain.Session, in ports.UpdateProfileInput) (*domain.FreelancerProfile, error) {
	if strings.TrimSpace(in.FreelancerID) == "" {
		return nil, fmt.Errorf("%w: freelancer id is required", domain.ErrValidation)
	}

	profile, err := s.profiles.FindByID(ctx, in.FreelancerID)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() && profile.UserID != session.UserID {
		s.logger.Warn().
			Str("user_id", session.UserID).
			Str("freelancer_id", profile.ID).
			Msg("profile update rejected: not the owner")
		return nil, domain.ErrForbidden
	}

	updated, err := s.profiles.UpdateDetails(ctx, profile.ID, domain.NormalizeSkills(in.Skills), strings.TrimSpace(in.Description))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("freelancer_id", updated.ID).Int("skills", len(updated.Skills)).Msg("profile updated")
	return updated, nil
}
