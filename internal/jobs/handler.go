package jobs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/ingest"
	"jobboard-backend/internal/shared/server/respond"
)

// Handler exposes the public and admin job endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/jobs.
func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		JobType:  strings.TrimSpace(c.Query("jobType")),
		Location: strings.TrimSpace(c.Query("location")),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch jobs", err.Error())
		return
	}
	respond.OK(c, "", publicPage(page))
}

// AdminList handles GET /api/jobs/admin/all and includes inactive postings.
func (h *Handler) AdminList(c *gin.Context) {
	filter := ListFilter{
		Search:          strings.TrimSpace(c.Query("search")),
		JobType:         strings.TrimSpace(c.Query("jobType")),
		Location:        strings.TrimSpace(c.Query("location")),
		Page:            intQuery(c, "page", 1),
		Limit:           intQuery(c, "limit", 20),
		IncludeInactive: true,
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch jobs", err.Error())
		return
	}
	respond.OK(c, "", page)
}

// Locations handles GET /api/jobs/filters/locations.
func (h *Handler) Locations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch locations", err.Error())
		return
	}
	if locations == nil {
		locations = []string{}
	}
	respond.OK(c, "", gin.H{"locations": locations})
}

// Detail handles GET /api/jobs/:id and GET /api/jobs/:id/:slug. The slug is
// cosmetic; lookup is by ID and each public view bumps the counter.
func (h *Handler) Detail(c *gin.Context) {
	id := c.Param("id")
	job, err := h.service.GetAndCountView(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Job not found", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch job", err.Error())
		return
	}
	respond.OK(c, "", gin.H{"job": publicView(job)})
}

// Create handles POST /api/jobs.
func (h *Handler) Create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if msg := validateCreate(&input); msg != "" {
		respond.Error(c, http.StatusBadRequest, msg, "")
		return
	}

	job, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to create job", err.Error())
		return
	}
	respond.Created(c, "Job created successfully", gin.H{"job": job})
}

// Update handles PUT /api/jobs/:id.
func (h *Handler) Update(c *gin.Context) {
	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if input.JobType != nil && *input.JobType != "" && !validJobType(*input.JobType) {
		respond.Error(c, http.StatusBadRequest, "Invalid job type", "")
		return
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" && !ingest.ValidEmail(strings.TrimSpace(*input.Email)) {
		respond.Error(c, http.StatusBadRequest, "Invalid email address", "")
		return
	}

	job, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Job not found", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to update job", err.Error())
		return
	}
	respond.OK(c, "Job updated successfully", gin.H{"job": job})
}

// Delete handles DELETE /api/jobs/:id.
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Job not found", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to delete job", err.Error())
		return
	}
	respond.OK(c, "Job deleted successfully", nil)
}

// publicView hides the storage handle from unauthenticated responses. The
// public ID is only needed by admin flows that manage the stored image.
func publicView(job Job) Job {
	job.ImagePublicID = ""
	return job
}

func publicPage(page Page) Page {
	for i := range page.Jobs {
		page.Jobs[i].ImagePublicID = ""
	}
	return page
}

func validateCreate(input *CreateInput) string {
	if strings.TrimSpace(input.Title) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(input.Company) == "" {
		return "Company is required"
	}
	if strings.TrimSpace(input.Location) == "" {
		return "Location is required"
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return "Image URL is required"
	}
	if input.JobType == "" {
		input.JobType = ingest.DefaultJobType
	}
	if !validJobType(input.JobType) {
		return "Invalid job type"
	}
	if email := strings.TrimSpace(input.Email); email != "" && !ingest.ValidEmail(email) {
		return "Invalid email address"
	}
	if link := strings.TrimSpace(input.ApplyLink); link != "" {
		normalized, ok := ingest.ValidApplyLink(link)
		if !ok {
			return "Invalid apply link"
		}
		input.ApplyLink = normalized
	}
	return ""
}

func validJobType(jt string) bool {
	for _, known := range ingest.JobTypes {
		if jt == known {
			return true
		}
	}
	return false
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
