package ingest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupExtractRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/jobs/extract", NewHandler(svc).Extract)
	return r
}

func multipartImage(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="poster.jpg"`}
	h["Content-Type"] = []string{"image/jpeg"}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestExtractHandlerSuccess(t *testing.T) {
	svc := NewService(&fakeStore{}, NewExtractor(staticPosterClient{
		reply: `{"title":"Engineer","company":"Acme","jobType":"Hybrid"}`,
	}), time.Second)
	r := setupExtractRouter(t, svc)

	body, contentType := multipartImage(t, "image", testJPEG(t, 120, 90))
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success envelope")
	}
	if !resp.Data.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess true")
	}
	if resp.Data.ImageURL == "" || resp.Data.ImagePublicID == "" {
		t.Fatalf("expected image ref in response: %+v", resp.Data)
	}
	if resp.Data.ExtractedDetails.Title == nil || *resp.Data.ExtractedDetails.Title != "Engineer" {
		t.Fatalf("unexpected extracted title: %+v", resp.Data.ExtractedDetails)
	}
}

func TestExtractHandlerMissingFile(t *testing.T) {
	svc := NewService(&fakeStore{}, NewExtractor(nil), time.Second)
	r := setupExtractRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatalf("expected error envelope")
	}
}

func TestExtractHandlerWrongFieldName(t *testing.T) {
	svc := NewService(&fakeStore{}, NewExtractor(nil), time.Second)
	r := setupExtractRouter(t, svc)

	body, contentType := multipartImage(t, "file", testJPEG(t, 50, 50))
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExtractHandlerUndecodableImage(t *testing.T) {
	svc := NewService(&fakeStore{}, NewExtractor(nil), time.Second)
	r := setupExtractRouter(t, svc)

	body, contentType := multipartImage(t, "image", []byte("not a jpeg at all"))
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatalf("expected error envelope")
	}
}

func TestExtractHandlerExtractionFailureStillOK(t *testing.T) {
	svc := NewService(&fakeStore{}, NewExtractor(nil), time.Second)
	r := setupExtractRouter(t, svc)

	body, contentType := multipartImage(t, "image", testJPEG(t, 50, 50))
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess false when model is not configured")
	}
}
