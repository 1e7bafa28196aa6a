package llm

import (
	"context"
	"errors"
)

// Client abstracts vision-capable model providers for job poster extraction.
// ExtractPoster sends the normalized JPEG bytes with the fixed prompt contract
// and returns the model's raw text reply. The reply is untrusted; callers own
// parsing and sanitization.
type Client interface {
	ExtractPoster(ctx context.Context, image []byte) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is used when no provider is configured. Extraction then
// always takes the non-fatal failure path.
type PlaceholderClient struct{}

// ExtractPoster returns ErrNotConfigured.
func (PlaceholderClient) ExtractPoster(ctx context.Context, image []byte) (string, error) {
	_ = ctx
	_ = image
	return "", ErrNotConfigured
}
