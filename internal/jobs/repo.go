package jobs

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no job matches the lookup.
var ErrNotFound = errors.New("job not found")

// JobsRepo defines persistence operations for job postings.
type JobsRepo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	GetBySlug(ctx context.Context, slug string) (Job, error)
	List(ctx context.Context, filter ListFilter) ([]Job, int64, error)
	Locations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
