package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/shared/telemetry"
)

// Extractor turns a model reply into sanitized fields.
type Extractor struct {
	client llm.Client
}

func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract runs the vision model over the image and parses the reply. Any
// failure returns default fields alongside the error so callers can persist
// the image and let a human fill the rest in.
func (e *Extractor) Extract(ctx context.Context, image []byte) (ExtractedFields, error) {
	if e.client == nil {
		return DefaultFields(), llm.ErrNotConfigured
	}

	reply, err := e.client.ExtractPoster(ctx, image)
	if err != nil {
		return DefaultFields(), fmt.Errorf("model call: %w", err)
	}

	fields, err := ParseModelReply(reply)
	if err != nil {
		telemetry.Warn("extract.parse_failed", map[string]any{
			"error":   err.Error(),
			"preview": preview(reply, 200),
		})
		return DefaultFields(), err
	}
	return fields, nil
}

// ParseModelReply strips markdown fencing and decodes the model's JSON into
// sanitized fields. Models occasionally wrap replies in ```json fences or
// prepend prose before the object.
func ParseModelReply(reply string) (ExtractedFields, error) {
	cleaned := stripCodeFences(reply)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return DefaultFields(), fmt.Errorf("reply contains no JSON object")
	}
	cleaned = cleaned[start : end+1]

	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return DefaultFields(), fmt.Errorf("decode reply: %w", err)
	}

	f := ExtractedFields{
		Title:         stringField(raw, "title"),
		Company:       stringField(raw, "company"),
		Location:      stringField(raw, "location"),
		Email:         stringField(raw, "email"),
		ContactNumber: stringField(raw, "contactNumber"),
		ApplyLink:     stringField(raw, "applyLink"),
		Description:   stringField(raw, "description"),
	}
	if jt := stringField(raw, "jobType"); jt != nil {
		f.JobType = *jt
	}
	return SanitizeFields(f), nil
}

func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// stringField reads a key as a string pointer, tolerating null and non-string
// values.
func stringField(raw map[string]any, key string) *string {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
