package rest

import (
	"github.com/gin-gonic/gin"
)

type generateContentRequest struct {
	Topic      string   `json:"topic"`
	Level      *int     `json:"level"`
	SourceURLs []string `json:"source_urls"`
}

// POST /api/content/generate
func (h *Handler) GenerateContent(c *gin.Context) {
	var req generateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.services.Content.Generate(c.Request.Context(), req.Topic, intOr(req.Level, 1), req.SourceURLs)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"content": content})
}

// POST /api/content/generate-openai
func (h *Handler) GenerateContentOpenAI(c *gin.Context) {
	var req generateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.services.Content.GenerateOpenAI(c.Request.Context(), req.Topic, intOr(req.Level, 2))
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"content": content, "model": content.Model})
}

type translateRequest struct {
	TextKZ string `json:"text_kz"`
}

// POST /api/content/translate
func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if !bindJSON(c, &req) {
		return
	}

	text, err := h.services.Content.Translate(c.Request.Context(), req.TextKZ)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"text_ru": text})
}
