package domain

import "time"

// Company is a hiring organisation listed in the company directory.
type Company struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Logo           *string    `json:"logo,omitempty"`
	Industry       string     `json:"industry"`
	Size           string     `json:"size"`
	Location       string     `json:"location"`
	Rating         float64    `json:"rating"`
	Reviews        int        `json:"reviews"`
	Description    string     `json:"description"`
	ActiveProjects int        `json:"active_projects"`
	TotalHires     int        `json:"total_hires"`
	Verified       bool       `json:"verified"`
	Skills         []string   `json:"skills"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}
