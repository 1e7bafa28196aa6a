package ingest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/server/respond"
)

// Handler exposes the poster extraction endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Extract handles POST /api/jobs/extract. The poster image arrives as the
// multipart field "image". The stored image and any extracted fields come
// back for human review; nothing is persisted to the job board yet.
func (h *Handler) Extract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+4096)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No image file provided", "")
		return
	}
	if fileHeader.Size > MaxImageBytes {
		respond.Error(c, http.StatusBadRequest, "Image exceeds the 10MB size limit", "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Could not read uploaded image", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Could not read uploaded image", err.Error())
		return
	}

	result, err := h.service.Ingest(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile), errors.Is(err, ErrNotImage):
			respond.Error(c, http.StatusBadRequest, "Uploaded file must be an image", "")
		case errors.Is(err, ErrTooLarge):
			respond.Error(c, http.StatusBadRequest, "Image exceeds the 10MB size limit", "")
		case errors.Is(err, ErrImageProcessing):
			respond.Error(c, http.StatusInternalServerError, "Could not process the uploaded image", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to extract job details", err.Error())
		}
		return
	}

	message := "Job details extracted successfully"
	if !result.ExtractionSuccess {
		message = "Image uploaded but automatic extraction failed, please fill in the details manually"
	}
	respond.OK(c, message, result)
}
