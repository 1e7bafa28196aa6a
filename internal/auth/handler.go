package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sharedauth "jobboard-backend/internal/shared/auth"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/users"
)

// Handler exposes email/password auth for the admin console.
type Handler struct {
	Users *users.Service
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < 8 {
		respond.Error(c, http.StatusBadRequest, "Email and a password of at least 8 characters are required", "")
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			respond.Error(c, http.StatusConflict, "Email already registered", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to register", err.Error())
		return
	}

	token, err := sharedauth.SignJWT(sharedauth.Claims{Sub: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to issue token", err.Error())
		return
	}
	respond.Created(c, "Registered successfully", gin.H{"token": token, "user": user})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "Invalid email or password", "")
		case errors.Is(err, users.ErrInactive):
			respond.Error(c, http.StatusForbidden, "Account is deactivated", "")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to log in", err.Error())
		}
		return
	}

	token, err := sharedauth.SignJWT(sharedauth.Claims{Sub: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to issue token", err.Error())
		return
	}
	respond.OK(c, "Logged in successfully", gin.H{"token": token, "user": user})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}
	user, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "Not authenticated", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}
	respond.OK(c, "", gin.H{"user": user})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so logout is a
// client-side discard; the endpoint exists so the UI has something to call.
func (h *Handler) Logout(c *gin.Context) {
	respond.OK(c, "Logged out successfully", nil)
}
