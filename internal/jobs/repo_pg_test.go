package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func sampleJob() Job {
	now := time.Now().UTC()
	return Job{
		ID:         "job-1",
		Title:      "Backend Engineer",
		Slug:       "backend-engineer-acme",
		Company:    "Acme",
		Location:   "Pune, India",
		JobType:    "Full-time",
		Email:      "jobs@acme.io",
		ImageURL:   "https://cdn.test/job-posters/a.jpg",
		IsActive:   true,
		PostedDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	job := sampleJob()

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(
			job.ID,
			job.Title,
			job.Slug,
			job.Company,
			job.Location,
			job.JobType,
			sqlmock.AnyArg(), // email
			sqlmock.AnyArg(), // contact_number
			sqlmock.AnyArg(), // apply_link
			job.ImageURL,
			sqlmock.AnyArg(), // image_public_id
			sqlmock.AnyArg(), // description
			sqlmock.AnyArg(), // roles_responsibilities
			sqlmock.AnyArg(), // eligibility
			job.IsActive,
			job.Views,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func jobRows(job Job) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "company", "location", "job_type",
		"email", "contact_number", "apply_link", "image_url", "image_public_id",
		"description", "roles_responsibilities", "eligibility",
		"is_active", "views", "posted_date", "created_at", "updated_at",
	}).AddRow(
		job.ID, job.Title, job.Slug, job.Company, job.Location, job.JobType,
		job.Email, nil, nil, job.ImageURL, nil,
		nil, nil, nil,
		job.IsActive, job.Views, job.PostedDate, job.CreatedAt, job.UpdatedAt,
	)
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE id =").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetBySlug(t *testing.T) {
	repo, mock := newMockRepo(t)
	job := sampleJob()

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE slug =").
		WithArgs(job.Slug).
		WillReturnRows(jobRows(job))

	got, err := repo.GetBySlug(context.Background(), job.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.ID != job.ID || got.Title != job.Title {
		t.Fatalf("unexpected job: %+v", got)
	}
	if got.ContactNumber != "" {
		t.Fatalf("expected NULL contact number to scan as empty, got %q", got.ContactNumber)
	}
}

func TestPGRepoListFiltersAndPaginates(t *testing.T) {
	repo, mock := newMockRepo(t)
	job := sampleJob()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM jobs WHERE is_active = TRUE AND \\(title ILIKE").
		WithArgs("%engineer%", "Full-time").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE is_active = TRUE AND \\(title ILIKE .+ ORDER BY posted_date DESC").
		WithArgs("%engineer%", "Full-time", 10, 10).
		WillReturnRows(jobRows(job))

	items, total, err := repo.List(context.Background(), ListFilter{
		Search:  "engineer",
		JobType: "Full-time",
		Page:    2,
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
	if len(items) != 1 || items[0].ID != job.ID {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoIncrementViews(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE jobs SET views = views \\+ 1 WHERE id = .+ RETURNING views").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(8))

	views, err := repo.IncrementViews(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if views != 8 {
		t.Fatalf("views = %d, want 8", views)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM jobs WHERE id =").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoLocations(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT DISTINCT location FROM jobs WHERE is_active = TRUE").
		WillReturnRows(sqlmock.NewRows([]string{"location"}).AddRow("Bengaluru").AddRow("Pune"))

	locations, err := repo.Locations(context.Background())
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locations) != 2 || locations[0] != "Bengaluru" {
		t.Fatalf("unexpected locations: %v", locations)
	}
}
