package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/shared/config"
)

func TestBuildLLMMissingKeyFallsBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	for _, provider := range []string{"openai", "googleai"} {
		client, err := buildLLM(context.Background(), config.Config{LLMProvider: provider})
		if err != nil {
			t.Fatalf("provider %s: buildLLM failed: %v", provider, err)
		}
		if _, ok := client.(llm.PlaceholderClient); !ok {
			t.Fatalf("provider %s: client = %T, want placeholder", provider, client)
		}
	}
}

func TestBuildDevWithoutDatabase(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	app, err := Build(config.Config{
		Env:           "dev",
		LLMProvider:   "openai",
		LocalStoreDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected nil DB without DATABASE_URL")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}
