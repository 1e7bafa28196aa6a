package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements JobsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, title, slug, company, location, job_type, email, contact_number, apply_link, image_url, image_public_id, description, roles_responsibilities, eligibility, is_active, views, posted_date, created_at, updated_at`

// Create inserts a new job posting.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (
    id,
    title,
    slug,
    company,
    location,
    job_type,
    email,
    contact_number,
    apply_link,
    image_url,
    image_public_id,
    description,
    roles_responsibilities,
    eligibility,
    is_active,
    views,
    posted_date,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Slug,
		job.Company,
		job.Location,
		job.JobType,
		nullable(job.Email),
		nullable(job.ContactNumber),
		nullable(job.ApplyLink),
		job.ImageURL,
		nullable(job.ImagePublicID),
		nullable(job.Description),
		nullable(job.RolesResponsibilities),
		nullable(job.Eligibility),
		job.IsActive,
		job.Views,
		job.PostedDate,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID fetches a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetBySlug fetches a job by its URL slug.
func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE slug = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

// List returns a page of jobs plus the total match count.
func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]Job, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(
		`SELECT %s FROM jobs%s ORDER BY posted_date DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, job)
	}
	return out, total, rows.Err()
}

// Locations returns the distinct locations of active jobs.
func (r *PGRepo) Locations(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT location FROM jobs WHERE is_active = TRUE ORDER BY location`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns of a job.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
    title = $2,
    slug = $3,
    company = $4,
    location = $5,
    job_type = $6,
    email = $7,
    contact_number = $8,
    apply_link = $9,
    image_url = $10,
    image_public_id = $11,
    description = $12,
    roles_responsibilities = $13,
    eligibility = $14,
    is_active = $15,
    updated_at = $16
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Slug,
		job.Company,
		job.Location,
		job.JobType,
		nullable(job.Email),
		nullable(job.ContactNumber),
		nullable(job.ApplyLink),
		job.ImageURL,
		nullable(job.ImagePublicID),
		nullable(job.Description),
		nullable(job.RolesResponsibilities),
		nullable(job.Eligibility),
		job.IsActive,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter and returns the new value.
func (r *PGRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE jobs SET views = views + 1 WHERE id = $1 RETURNING views`
	var views int64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return views, err
}

// SlugExists reports whether a slug is already taken.
func (r *PGRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM jobs WHERE slug = $1)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, slug).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (Job, error) {
	var job Job
	var email, contactNumber, applyLink sql.NullString
	var imagePublicID, description, roles, eligibility sql.NullString
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Slug,
		&job.Company,
		&job.Location,
		&job.JobType,
		&email,
		&contactNumber,
		&applyLink,
		&job.ImageURL,
		&imagePublicID,
		&description,
		&roles,
		&eligibility,
		&job.IsActive,
		&job.Views,
		&job.PostedDate,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	job.Email = email.String
	job.ContactNumber = contactNumber.String
	job.ApplyLink = applyLink.String
	job.ImagePublicID = imagePublicID.String
	job.Description = description.String
	job.RolesResponsibilities = roles.String
	job.Eligibility = eligibility.String
	return job, nil
}

func buildWhere(filter ListFilter) (string, []any) {
	var clauses []string
	var args []any

	if !filter.IncludeInactive {
		clauses = append(clauses, "is_active = TRUE")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR location ILIKE $%d)", n, n, n))
	}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		clauses = append(clauses, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
