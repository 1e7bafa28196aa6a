package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "jobboard-backend/internal/auth"
	"jobboard-backend/internal/contact"
	"jobboard-backend/internal/ingest"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	JobsHandler    *jobs.Handler
	IngestHandler  *ingest.Handler
	AuthHandler    *AuthHandlers
	ContactHandler *contact.Handler
	GoogleAuth     *googleauth.GoogleService
}

// AuthHandlers groups the email/password auth endpoints.
type AuthHandlers struct {
	Register gin.HandlerFunc
	Login    gin.HandlerFunc
	Logout   gin.HandlerFunc
	Me       gin.HandlerFunc
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.GroupAuth:   {Rate: 0.2, Burst: 5},
			middleware.GroupUpload: {Rate: 0.5, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			return c.GetString("rateLimitGroup")
		},
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.JobsHandler != nil {
		jobsGroup := api.Group("/jobs")
		jobsGroup.GET("", deps.JobsHandler.List)
		jobsGroup.GET("/filters/locations", deps.JobsHandler.Locations)

		admin := jobsGroup.Group("", middleware.RequireAdmin())
		admin.GET("/admin/all", deps.JobsHandler.AdminList)
		admin.POST("", deps.JobsHandler.Create)
		admin.PUT("/:id", deps.JobsHandler.Update)
		admin.DELETE("/:id", deps.JobsHandler.Delete)

		if deps.IngestHandler != nil {
			jobsGroup.POST("/extract", middleware.RequireAdmin(), rateLimitGrouped(rateLimit, middleware.GroupUpload), deps.IngestHandler.Extract)
		}

		// The slug segment is cosmetic; both forms resolve by ID.
		jobsGroup.GET("/:id", deps.JobsHandler.Detail)
		jobsGroup.GET("/:id/:slug", deps.JobsHandler.Detail)
	}

	if deps.AuthHandler != nil {
		authGroup := api.Group("/auth")
		authGroup.POST("/register", rateLimitGrouped(rateLimit, middleware.GroupAuth), deps.AuthHandler.Register)
		authGroup.POST("/login", rateLimitGrouped(rateLimit, middleware.GroupAuth), deps.AuthHandler.Login)
		authGroup.POST("/logout", deps.AuthHandler.Logout)
		authGroup.GET("/me", deps.AuthHandler.Me)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	if deps.ContactHandler != nil {
		api.POST("/contact/send-email", deps.ContactHandler.SendEmail)
	}

	r.GET("/metrics", metrics.Handler())

	if deps.Config.ObjectStoreType == "local" {
		r.Static("/static", deps.Config.LocalStoreDir)
	}

	return r
}

// rateLimitGrouped pins a route to a rate limit group.
func rateLimitGrouped(limit gin.HandlerFunc, group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("rateLimitGroup", group)
		limit(c)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
