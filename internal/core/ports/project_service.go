package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// CreateProjectInput carries a new project posted by a client.
type CreateProjectInput struct {
	Title       string
	Description string
	Budget      int64
	Skills      []string
}

// UpdateStatusInput requests a status transition. FreelancerID is required
// when moving a project to "In Progress".
type UpdateStatusInput struct {
	Status       string
	FreelancerID string
}

type ProjectService interface {
	ListProjects(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, session domain.Session, input CreateProjectInput) (*domain.Project, error)
	UpdateStatus(ctx context.Context, session domain.Session, id string, input UpdateStatusInput) (*domain.Project, error)
}
