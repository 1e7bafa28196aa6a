package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of JobsRepo used in dev mode and
// tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job // id -> job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) GetBySlug(ctx context.Context, slug string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.data {
		if job.Slug == slug {
			return job, nil
		}
	}
	return Job{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Job, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Job
	for _, job := range r.data {
		if !filter.IncludeInactive && !job.IsActive {
			continue
		}
		if filter.JobType != "" && job.JobType != filter.JobType {
			continue
		}
		if filter.Location != "" && !containsFold(job.Location, filter.Location) {
			continue
		}
		if filter.Search != "" &&
			!containsFold(job.Title, filter.Search) &&
			!containsFold(job.Company, filter.Search) &&
			!containsFold(job.Location, filter.Search) {
			continue
		}
		matched = append(matched, job)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PostedDate.After(matched[j].PostedDate)
	})

	total := int64(len(matched))
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepo) Locations(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, job := range r.data {
		if !job.IsActive {
			continue
		}
		if _, ok := seen[job.Location]; ok {
			continue
		}
		seen[job.Location] = struct{}{}
		out = append(out, job.Location)
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[job.ID]; !ok {
		return ErrNotFound
	}
	r.data[job.ID] = job
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[id]
	if !ok {
		return 0, ErrNotFound
	}
	job.Views++
	r.data[id] = job
	return job.Views, nil
}

func (r *MemoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.data {
		if job.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
