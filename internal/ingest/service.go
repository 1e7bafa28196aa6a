package ingest

import (
	"context"
	"strings"
	"time"

	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/shared/telemetry"
)

// MaxImageBytes caps poster uploads at 10 MiB.
const MaxImageBytes = 10 << 20

const posterFolder = "job-posters"

// Result is what an ingestion run hands back to the review UI. The image is
// always stored when the run succeeds; extraction may still have failed, in
// which case the fields are defaults and ExtractionSuccess is false.
type Result struct {
	ImageURL          string          `json:"imageUrl"`
	ImagePublicID     string          `json:"imagePublicId"`
	ExtractedDetails  ExtractedFields `json:"extractedDetails"`
	Confidence        int             `json:"confidence"`
	ExtractionSuccess bool            `json:"extractionSuccess"`
}

// Service runs the poster ingestion pipeline.
type Service struct {
	store          object.ImageStore
	extractor      *Extractor
	extractTimeout time.Duration
}

func NewService(store object.ImageStore, extractor *Extractor, extractTimeout time.Duration) *Service {
	if extractTimeout <= 0 {
		extractTimeout = 45 * time.Second
	}
	return &Service{store: store, extractor: extractor, extractTimeout: extractTimeout}
}

// Ingest validates and normalizes the uploaded image, stores it, then asks
// the vision model for the poster's fields. A storage failure aborts the run;
// an extraction failure does not.
func (s *Service) Ingest(ctx context.Context, data []byte, contentType string) (Result, error) {
	metrics.IncIngestStarted()
	started := time.Now()

	if len(data) == 0 {
		metrics.IncIngestFailed()
		return Result{}, ErrNoFile
	}
	if len(data) > MaxImageBytes {
		metrics.IncIngestFailed()
		return Result{}, ErrTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		metrics.IncIngestFailed()
		return Result{}, ErrNotImage
	}

	normalized, err := Normalize(data)
	if err != nil {
		metrics.IncIngestFailed()
		return Result{}, err
	}

	ref, err := s.store.Upload(ctx, normalized, posterFolder)
	if err != nil {
		metrics.IncIngestFailed()
		telemetry.Error("ingest.upload_failed", map[string]any{"error": err.Error()})
		return Result{}, ErrStorageUpload
	}

	result := Result{
		ImageURL:         ref.URL,
		ImagePublicID:    ref.PublicID,
		ExtractedDetails: DefaultFields(),
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()

	fields, err := s.extractor.Extract(extractCtx, normalized)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Warn("ingest.extraction_failed", map[string]any{
			"error":     err.Error(),
			"public_id": ref.PublicID,
		})
	} else {
		result.ExtractedDetails = fields
		result.ExtractionSuccess = true
	}
	result.Confidence = Score(result.ExtractedDetails)

	metrics.IncIngestCompleted()
	metrics.ObserveIngestDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("ingest.complete", map[string]any{
		"public_id":          ref.PublicID,
		"confidence":         result.Confidence,
		"extraction_success": result.ExtractionSuccess,
		"duration_ms":        time.Since(started).Milliseconds(),
	})
	return result, nil
}
