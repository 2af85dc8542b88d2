package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// FreelancerRepository persists freelancer profiles. Profiles are addressed by
// their own ID or by the owning user's ID.
type FreelancerRepository interface {
	Create(ctx context.Context, profile *domain.FreelancerProfile) (*domain.FreelancerProfile, error)
	FindByID(ctx context.Context, id string) (*domain.FreelancerProfile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.FreelancerProfile, error)
	UpdateDetails(ctx context.Context, id string, skills []string, description string) (*domain.FreelancerProfile, error)

	// AssignProject adds projectID to the freelancer's current projects.
	AssignProject(ctx context.Context, userID, projectID string) error
	// CompleteProject moves projectID from current to completed projects and
	// credits payout to the freelancer's funds.
	CompleteProject(ctx context.Context, userID, projectID string, payout int64) error
}
