package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	Status       domain.ProjectStatus
	ClientID     string
	FreelancerID string
	Search       string // case-insensitive substring on title or description
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns matching projects, newest first.
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	// UpdateStatus moves the project from status `from` to `to` and records
	// freelancerID. It fails with domain.ErrInvalidTransition when the stored
	// status is no longer `from`.
	UpdateStatus(ctx context.Context, id string, from, to domain.ProjectStatus, freelancerID string) (*domain.Project, error)
}
