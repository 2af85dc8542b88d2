package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "Pending"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPending:    {ProjectInProgress},
	ProjectInProgress: {ProjectCompleted},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseProjectStatus accepts the display form ("In Progress") as well as
// snake/kebab spellings ("in_progress", "in-progress").
func ParseProjectStatus(s string) (ProjectStatus, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer("_", " ", "-", " ").Replace(k)
	switch k {
	case "pending":
		return ProjectPending, nil
	case "in progress":
		return ProjectInProgress, nil
	case "completed":
		return ProjectCompleted, nil
	default:
		return "", fmt.Errorf("%w: unknown project status %q", ErrValidation, s)
	}
}

// Project is a unit of work published by a client.
type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Budget       int64         `json:"budget"`
	Skills       []string      `json:"skills"`
	Status       ProjectStatus `json:"status"`
	FreelancerID string        `json:"freelancerId,omitempty"`
	ClientID     string        `json:"clientId"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
