package domain

import (
	"strings"
	"time"
)

// FreelancerProfile extends a freelancer User with marketplace data.
// CurrentProjects and CompletedProjects hold project IDs and behave as sets.
type FreelancerProfile struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Skills            []string  `json:"skills"`
	Description       string    `json:"description"`
	Funds             int64     `json:"funds"`
	CurrentProjects   []string  `json:"currentProjects"`
	CompletedProjects []string  `json:"completedProjects"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewFreelancerProfile returns the empty profile created alongside a freelancer account.
func NewFreelancerProfile(userID string, now time.Time) *FreelancerProfile {
	return &FreelancerProfile{
		UserID:            userID,
		Skills:            []string{},
		CurrentProjects:   []string{},
		CompletedProjects: []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NormalizeSkills trims every entry, drops blanks and repeats (case-insensitive)
// and keeps the first-seen order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
