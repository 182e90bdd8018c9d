package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/config"
)

// NewRouter builds the gin engine with all API routes.
func NewRouter(h *Handler, cfg config.HTTP, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(requestMetrics())
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "BATYR BOL",
			"timestamp": time.Now().UTC(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/register", h.rateLimit(config.BucketRegister), h.Register)
		api.POST("/login", h.rateLimit(config.BucketLogin), h.Login)
		api.POST("/check-session", h.CheckSession)
		api.POST("/logout", h.Logout)
		api.PUT("/profile", h.UpdateProfile)

		content := api.Group("/content")
		{
			content.POST("/generate", h.rateLimit(config.BucketContentGenerate), h.GenerateContent)
			content.POST("/generate-openai", h.rateLimit(config.BucketContentGenerate), h.GenerateContentOpenAI)
			content.POST("/translate", h.rateLimit(config.BucketTranslate), h.Translate)
		}

		mission := api.Group("/mission")
		{
			mission.POST("/generate", h.GenerateMission)
			mission.POST("/generate-scenario", h.rateLimit(config.BucketScenarioGeneration), h.GenerateScenario)
			mission.POST("/personalized", h.rateLimit(config.BucketPersonalizedMission), h.PersonalizedMission)
			mission.POST("/complete", h.CompleteMission)
		}

		api.POST("/answer/check", h.rateLimit(config.BucketAnswerCheck), h.CheckAnswer)

		clans := api.Group("/clans")
		{
			clans.POST("/create", h.CreateClan)
			clans.POST("/join", h.JoinClan)
			clans.GET("/list", h.ListClans)
			clans.POST("/activity", h.TrackClanActivity)
			clans.GET("/members/status", h.ClanMembersStatus)
			clans.GET("/leaderboard", h.ClanLeaderboard)
		}

		api.POST("/contact", h.Contact)
		api.POST("/duels/challenge", h.ChallengeDuel)
	}

	return r
}
