package jobs

import "time"

// Job is a reviewed, published job posting.
type Job struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	Slug                  string    `json:"slug"`
	Company               string    `json:"company"`
	Location              string    `json:"location"`
	JobType               string    `json:"jobType"`
	Email                 string    `json:"email,omitempty"`
	ContactNumber         string    `json:"contactNumber,omitempty"`
	ApplyLink             string    `json:"applyLink,omitempty"`
	ImageURL              string    `json:"imageUrl"`
	ImagePublicID         string    `json:"imagePublicId,omitempty"`
	Description           string    `json:"description,omitempty"`
	RolesResponsibilities string    `json:"rolesResponsibilities,omitempty"`
	Eligibility           string    `json:"eligibility,omitempty"`
	IsActive              bool      `json:"isActive"`
	Views                 int64     `json:"views"`
	PostedDate            time.Time `json:"postedDate"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ListFilter narrows the public job listing.
type ListFilter struct {
	Search   string
	JobType  string
	Location string
	Page     int
	Limit    int
	// IncludeInactive is only set on admin listings.
	IncludeInactive bool
}

// Page wraps a listing result with pagination info.
type Page struct {
	Jobs       []Job `json:"jobs"`
	Total      int64 `json:"total"`
	PageNum    int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}
