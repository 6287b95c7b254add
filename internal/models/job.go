package models

import "time"

// JobApplication is one entry in the job-search pipeline.
type JobApplication struct {
	ID             string     `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Level          string     `json:"level,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	WorkMode       WorkMode   `json:"work_mode,omitempty"`
	PostingURL     string     `json:"posting_url,omitempty"`
	Status         JobStatus  `json:"status"`
	Visibility     Visibility `json:"visibility"`
	CreatedDate    string     `json:"created_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
