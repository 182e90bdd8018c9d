package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/batyr-bol/internal/service"
)

type checkAnswerRequest struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Context       string `json:"context"`
}

// POST /api/answer/check
func (h *Handler) CheckAnswer(c *gin.Context) {
	var req checkAnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	grade, err := h.services.Grading.Check(c.Request.Context(), service.GradeRequest{
		Question:      req.Question,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		Context:       req.Context,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"result": grade})
}
