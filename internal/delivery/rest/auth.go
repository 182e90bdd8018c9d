package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/batyr-bol/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"user": user.Public()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{
		"user":       user.Public(),
		"session_id": session.ID,
	})
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// POST /api/check-session answers 200 with valid=false for unknown sessions.
func (h *Handler) CheckSession(c *gin.Context) {
	var req sessionRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.SessionID == "" {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": msgNoSession})
		return
	}

	user, session, err := h.services.Auth.CheckSession(c.Request.Context(), req.SessionID)
	if err != nil {
		if !errors.Is(err, service.ErrSessionInvalid) {
			h.handleError(c, err)
			return
		}
		_, message := mapError(err)
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"user":       user.Public(),
		"session_id": session.ID,
	})
}

// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	var req sessionRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.SessionID != "" {
		if err := h.services.Auth.Logout(c.Request.Context(), req.SessionID); err != nil {
			h.handleError(c, err)
			return
		}
	}

	success(c, gin.H{"message": msgLoggedOut})
}

type profileRequest struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	NewEmail  string `json:"new_email"`
}

// PUT /api/profile identifies the user by the X-Session-ID header, the
// session_id field or the email field, in that order.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req) {
		return
	}

	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID = req.SessionID
	}

	user, err := h.services.Auth.UpdateProfile(c.Request.Context(), service.ProfileUpdate{
		SessionID: sessionID,
		Email:     req.Email,
		Name:      req.Name,
		NewEmail:  req.NewEmail,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{
		"message": msgProfileSaved,
		"user":    user.Public(),
	})
}
