package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupJobsRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: NewMemoryRepo(), Store: &recordingStore{}}
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api/jobs")
	api.GET("", h.List)
	api.GET("/filters/locations", h.Locations)
	api.GET("/admin/all", h.AdminList)
	api.GET("/:id", h.Detail)
	api.GET("/:id/:slug", h.Detail)
	api.POST("", h.Create)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateJobValidation(t *testing.T) {
	r, _ := setupJobsRouter(t)

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing title", CreateInput{Company: "Acme", Location: "Pune", ImageURL: "https://x/y.jpg"}},
		{"missing company", CreateInput{Title: "Engineer", Location: "Pune", ImageURL: "https://x/y.jpg"}},
		{"missing image", CreateInput{Title: "Engineer", Company: "Acme", Location: "Pune"}},
		{"bad job type", CreateInput{Title: "Engineer", Company: "Acme", Location: "Pune", ImageURL: "https://x/y.jpg", JobType: "Gig"}},
		{"bad email", CreateInput{Title: "Engineer", Company: "Acme", Location: "Pune", ImageURL: "https://x/y.jpg", Email: "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/jobs", tc.input)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateJobDefaultsJobType(t *testing.T) {
	r, _ := setupJobsRouter(t)

	input := validCreateInput()
	input.JobType = ""
	rec := doJSON(t, r, http.MethodPost, "/api/jobs", input)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Job Job `json:"job"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Job.JobType != "Full-time" {
		t.Fatalf("jobType = %q, want Full-time", resp.Data.Job.JobType)
	}
}

func TestListJobsEnvelope(t *testing.T) {
	r, svc := setupJobsRouter(t)
	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodGet, "/api/jobs?page=1&limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    Page `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success envelope")
	}
	if resp.Data.Total != 1 || len(resp.Data.Jobs) != 1 {
		t.Fatalf("unexpected page: %+v", resp.Data)
	}
}

func TestPublicResponsesOmitImagePublicID(t *testing.T) {
	r, svc := setupJobsRouter(t)
	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, path := range []string{"/api/jobs", "/api/jobs/" + created.ID} {
		rec := doJSON(t, r, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, rec.Code)
		}
		if bytes.Contains(rec.Body.Bytes(), []byte("imagePublicId")) {
			t.Fatalf("GET %s leaked imagePublicId: %s", path, rec.Body.String())
		}
	}

	rec := doJSON(t, r, http.MethodGet, "/api/jobs/admin/all", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"imagePublicId":"job-posters/a"`)) {
		t.Fatalf("admin list should keep imagePublicId: %s", rec.Body.String())
	}
}

func TestDetailCountsView(t *testing.T) {
	r, svc := setupJobsRouter(t)
	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodGet, "/api/jobs/"+created.ID+"/"+created.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data struct {
			Job Job `json:"job"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Job.Views != 1 {
		t.Fatalf("views = %d, want 1", resp.Data.Job.Views)
	}
}

func TestDetailNotFound(t *testing.T) {
	r, _ := setupJobsRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/api/jobs/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteJob(t *testing.T) {
	r, svc := setupJobsRouter(t)
	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodDelete, "/api/jobs/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodDelete, "/api/jobs/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}
