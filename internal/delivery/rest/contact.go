package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// POST /api/contact
func (h *Handler) Contact(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.services.Contact.Submit(c.Request.Context(), entities.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		IP:      clientIP(c.Request),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"message": msgContactSent})
}

type duelRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// POST /api/duels/challenge
func (h *Handler) ChallengeDuel(c *gin.Context) {
	var req duelRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.services.Duels.Challenge(req.From, req.To)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"message": message})
}
