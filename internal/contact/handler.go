package contact

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/ingest"
	"jobboard-backend/internal/shared/server/respond"
)

const maxMessageLen = 5000

// Handler exposes the contact form endpoint.
type Handler struct {
	Mailer Sender
}

// SendEmail handles POST /api/contact/send-email.
func (h *Handler) SendEmail(c *gin.Context) {
	var msg Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		respond.Error(c, http.StatusBadRequest, "Name, email, subject and message are all required", "")
		return
	}
	if !ingest.ValidEmail(msg.Email) {
		respond.Error(c, http.StatusBadRequest, "Invalid email address", "")
		return
	}
	if len(msg.Message) > maxMessageLen {
		respond.Error(c, http.StatusBadRequest, "Message is too long", "")
		return
	}

	if h.Mailer == nil {
		respond.Error(c, http.StatusServiceUnavailable, "Contact form is not configured", "")
		return
	}
	if err := h.Mailer.Send(msg); err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to send message", err.Error())
		return
	}
	respond.OK(c, "Message sent successfully", nil)
}
