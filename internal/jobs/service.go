package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/shared/telemetry"
)

// Service owns job posting business rules.
type Service struct {
	Repo  JobsRepo
	Store object.ImageStore
}

// CreateInput carries the reviewed fields for a new job posting.
type CreateInput struct {
	Title                 string `json:"title"`
	Company               string `json:"company"`
	Location              string `json:"location"`
	JobType               string `json:"jobType"`
	Email                 string `json:"email"`
	ContactNumber         string `json:"contactNumber"`
	ApplyLink             string `json:"applyLink"`
	ImageURL              string `json:"imageUrl"`
	ImagePublicID         string `json:"imagePublicId"`
	Description           string `json:"description"`
	RolesResponsibilities string `json:"rolesResponsibilities"`
	Eligibility           string `json:"eligibility"`
}

// UpdateInput carries an edit to an existing posting. Nil pointers leave the
// stored value untouched.
type UpdateInput struct {
	Title                 *string `json:"title"`
	Company               *string `json:"company"`
	Location              *string `json:"location"`
	JobType               *string `json:"jobType"`
	Email                 *string `json:"email"`
	ContactNumber         *string `json:"contactNumber"`
	ApplyLink             *string `json:"applyLink"`
	ImageURL              *string `json:"imageUrl"`
	ImagePublicID         *string `json:"imagePublicId"`
	Description           *string `json:"description"`
	RolesResponsibilities *string `json:"rolesResponsibilities"`
	Eligibility           *string `json:"eligibility"`
	IsActive              *bool   `json:"isActive"`
}

// Create persists a reviewed job posting with a unique slug.
func (s *Service) Create(ctx context.Context, input CreateInput) (Job, error) {
	now := time.Now().UTC()
	job := Job{
		ID:                    uuid.NewString(),
		Title:                 strings.TrimSpace(input.Title),
		Company:               strings.TrimSpace(input.Company),
		Location:              strings.TrimSpace(input.Location),
		JobType:               input.JobType,
		Email:                 strings.TrimSpace(input.Email),
		ContactNumber:         strings.TrimSpace(input.ContactNumber),
		ApplyLink:             strings.TrimSpace(input.ApplyLink),
		ImageURL:              strings.TrimSpace(input.ImageURL),
		ImagePublicID:         strings.TrimSpace(input.ImagePublicID),
		Description:           strings.TrimSpace(input.Description),
		RolesResponsibilities: strings.TrimSpace(input.RolesResponsibilities),
		Eligibility:           strings.TrimSpace(input.Eligibility),
		IsActive:              true,
		PostedDate:            now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	uniqueSlug, err := s.uniqueSlug(ctx, job.Title, job.Company)
	if err != nil {
		return Job{}, err
	}
	job.Slug = uniqueSlug

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	telemetry.Info("jobs.created", map[string]any{"job_id": job.ID, "slug": job.Slug})
	return job, nil
}

// Get fetches a job by ID without touching the view counter.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetAndCountView fetches a job for public display and bumps its view count.
// A failed counter update is not worth failing the page for.
func (s *Service) GetAndCountView(ctx context.Context, id string) (Job, error) {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	views, err := s.Repo.IncrementViews(ctx, id)
	if err != nil {
		telemetry.Warn("jobs.view_count_failed", map[string]any{"job_id": id, "error": err.Error()})
		return job, nil
	}
	job.Views = views
	return job, nil
}

// List returns a page of jobs with pagination metadata.
func (s *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	if filter.Limit <= 0 || filter.Limit > 50 {
		filter.Limit = 10
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	items, total, err := s.Repo.List(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return Page{
		Jobs:       items,
		Total:      total,
		PageNum:    filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Locations returns the distinct locations across active jobs.
func (s *Service) Locations(ctx context.Context) ([]string, error) {
	return s.Repo.Locations(ctx)
}

// Update applies an edit. A new image replaces the stored one and the old
// remote object gets cleaned up after the row is saved.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Job, error) {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}

	oldPublicID := job.ImagePublicID
	titleChanged := false

	if input.Title != nil && strings.TrimSpace(*input.Title) != "" && *input.Title != job.Title {
		job.Title = strings.TrimSpace(*input.Title)
		titleChanged = true
	}
	if input.Company != nil && strings.TrimSpace(*input.Company) != "" {
		job.Company = strings.TrimSpace(*input.Company)
	}
	if input.Location != nil && strings.TrimSpace(*input.Location) != "" {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.JobType != nil && *input.JobType != "" {
		job.JobType = *input.JobType
	}
	if input.Email != nil {
		job.Email = strings.TrimSpace(*input.Email)
	}
	if input.ContactNumber != nil {
		job.ContactNumber = strings.TrimSpace(*input.ContactNumber)
	}
	if input.ApplyLink != nil {
		job.ApplyLink = strings.TrimSpace(*input.ApplyLink)
	}
	if input.Description != nil {
		job.Description = strings.TrimSpace(*input.Description)
	}
	if input.RolesResponsibilities != nil {
		job.RolesResponsibilities = strings.TrimSpace(*input.RolesResponsibilities)
	}
	if input.Eligibility != nil {
		job.Eligibility = strings.TrimSpace(*input.Eligibility)
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}

	// A blank imageUrl keeps the existing image.
	imageReplaced := false
	if input.ImageURL != nil && strings.TrimSpace(*input.ImageURL) != "" && *input.ImageURL != job.ImageURL {
		job.ImageURL = strings.TrimSpace(*input.ImageURL)
		if input.ImagePublicID != nil {
			job.ImagePublicID = strings.TrimSpace(*input.ImagePublicID)
		}
		imageReplaced = true
	}

	if titleChanged {
		newSlug, err := s.uniqueSlug(ctx, job.Title, job.Company)
		if err != nil {
			return Job{}, err
		}
		job.Slug = newSlug
	}

	job.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}

	if imageReplaced && oldPublicID != "" && oldPublicID != job.ImagePublicID {
		s.deleteImage(ctx, id, oldPublicID)
	}
	return job, nil
}

// Delete removes a job and cleans up its stored image. The image delete is
// never allowed to fail the job deletion.
func (s *Service) Delete(ctx context.Context, id string) error {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if job.ImagePublicID != "" {
		s.deleteImage(ctx, id, job.ImagePublicID)
	}
	telemetry.Info("jobs.deleted", map[string]any{"job_id": id})
	return nil
}

func (s *Service) deleteImage(ctx context.Context, jobID, publicID string) {
	if s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, publicID); err != nil {
		metrics.IncImageDeleteFailed()
		telemetry.Warn("jobs.image_delete_failed", map[string]any{
			"job_id":    jobID,
			"public_id": publicID,
			"error":     err.Error(),
		})
	}
}

// uniqueSlug builds a slug from the title and company, suffixing a short
// random token on collision.
func (s *Service) uniqueSlug(ctx context.Context, title, company string) (string, error) {
	base := slug.Make(title + " " + company)
	if base == "" {
		base = "job"
	}
	exists, err := s.Repo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", base, suffix), nil
}
