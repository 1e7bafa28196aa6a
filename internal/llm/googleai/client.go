package googleai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"jobboard-backend/internal/llm"
)

// Client implements llm.Client against Gemini via langchaingo.
type Client struct {
	model llms.Model
	name  string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}

	m, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create googleai client: %w", err)
	}

	return &Client{model: m, name: model}, nil
}

// ExtractPoster sends the poster prompt plus the image and returns the raw
// model reply.
func (c *Client) ExtractPoster(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(llm.PosterPrompt),
				llms.BinaryPart("image/jpeg", image),
			},
		},
	}

	resp, err := c.model.GenerateContent(ctx, content, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("googleai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("googleai response missing choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Content)
	if reply == "" {
		return "", fmt.Errorf("googleai response empty content")
	}
	return reply, nil
}

var _ llm.Client = (*Client)(nil)
