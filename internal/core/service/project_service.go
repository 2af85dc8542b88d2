package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	profiles ports.FreelancerRepository
	tx       ports.Transactor
	events   ports.EventPublisher
	logger   zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	profiles ports.FreelancerRepository,
	tx ports.Transactor,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, profiles: profiles, tx: tx, events: events, logger: logger}
}

// ListProjects returns every project matching filter; an empty filter lists all.
func (s *ProjectService) ListProjects(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// CreateProject publishes a new Pending project owned by the calling client.
func (s *ProjectService) CreateProject(ctx context.Context, session domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
	if session.Usertype != domain.UsertypeClient && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}

	now := time.Now().UTC()
	created, err := s.projects.Create(ctx, &domain.Project{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Budget:      in.Budget,
		Skills:      domain.NormalizeSkills(in.Skills),
		Status:      domain.ProjectPending,
		ClientID:    session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("client_id", created.ClientID).Msg("project created")
	s.publish(ctx, domain.NewEvent(domain.EventProjectCreated, created.ID, map[string]any{
		"client_id": created.ClientID,
		"budget":    created.Budget,
	}))
	return created, nil
}

// UpdateStatus applies a status transition and its profile side effects in
// one transaction:
//   - Pending → In Progress assigns the freelancer and adds the project to
//     their current projects.
//   - In Progress → Completed moves the project to their completed projects
//     and credits the budget to their funds.
func (s *ProjectService) UpdateStatus(ctx context.Context, session domain.Session, id string, in ports.UpdateStatusInput) (*domain.Project, error) {
	next, err := domain.ParseProjectStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var (
		updated *domain.Project
		from    domain.ProjectStatus
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.projects.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !session.IsAdmin() && p.ClientID != session.UserID {
			return domain.ErrForbidden
		}
		if !p.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, p.Status, next)
		}
		from = p.Status

		freelancerID := p.FreelancerID
		if next == domain.ProjectInProgress {
			freelancerID = strings.TrimSpace(in.FreelancerID)
			if freelancerID == "" {
				return fmt.Errorf("%w: freelancer id is required to start a project", domain.ErrValidation)
			}
			if _, err := s.profiles.FindByUserID(ctx, freelancerID); err != nil {
				return err
			}
		}

		updated, err = s.projects.UpdateStatus(ctx, p.ID, p.Status, next, freelancerID)
		if err != nil {
			return err
		}

		switch next {
		case domain.ProjectInProgress:
			return s.profiles.AssignProject(ctx, freelancerID, p.ID)
		case domain.ProjectCompleted:
			return s.profiles.CompleteProject(ctx, freelancerID, p.ID, p.Budget)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project_id", updated.ID).
		Str("from", string(from)).
		Str("to", string(updated.Status)).
		Msg("project status changed")
	s.publish(ctx, domain.NewEvent(domain.EventProjectStatusChanged, updated.ID, map[string]any{
		"from":          string(from),
		"to":            string(updated.Status),
		"freelancer_id": updated.FreelancerID,
	}))
	return updated, nil
}

func (s *ProjectService) publish(ctx context.Context, evt domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("event", evt.Type).Msg("failed to publish event")
	}
}
