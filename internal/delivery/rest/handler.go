package rest

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/config"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth     AuthService
	Content  ContentService
	Missions MissionGenService
	Grading  GradingService
	Clans    ClanService
	Contact  ContactService
	Duels    DuelService
}

// Handler serves the web API.
type Handler struct {
	services Services
	limiter  RateLimiter
	limits   map[string]config.RateLimit
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new Handler. Buckets missing from limits are not limited.
func NewHandler(services Services, limiter RateLimiter, limits map[string]config.RateLimit, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		limiter:  limiter,
		limits:   limits,
		logger:   logger,
		now:      time.Now,
	}
}

// bindJSON decodes the body into req. An empty body leaves req zero valued.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
