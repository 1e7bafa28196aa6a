package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitUploadGroupBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "admin-1")
		c.Next()
	})
	r.POST("/api/jobs/extract", func(c *gin.Context) {
		c.Set("rateLimitGroup", GroupUpload)
		RateLimit(RateLimitConfig{
			GroupFor: func(c *gin.Context) string { return c.GetString("rateLimitGroup") },
			Limiter:  limiter,
			Rules: map[string]RateLimitRule{
				GroupUpload: {Rate: 0.5, Burst: 3},
			},
		})(c)
	}, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatalf("expected error envelope")
	}
	if body.Message == "" {
		t.Fatalf("expected message in envelope")
	}
}

func TestRateLimitUnknownGroupPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(nil)

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		Rules: map[string]RateLimitRule{
			GroupAuth: {Rate: 1, Burst: 1},
		},
	}))
	r.GET("/api/jobs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRateLimitRecoversOverTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	rule := RateLimitRule{Rate: 1, Burst: 1}
	if ok, _ := limiter.Allow("ip|AUTH", rule); !ok {
		t.Fatalf("first request should pass")
	}
	if ok, _ := limiter.Allow("ip|AUTH", rule); ok {
		t.Fatalf("second immediate request should be limited")
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("ip|AUTH", rule); !ok {
		t.Fatalf("request after refill should pass")
	}
}
