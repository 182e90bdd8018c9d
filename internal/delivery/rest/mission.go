package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/batyr-bol/internal/service"
)

type generateMissionRequest struct {
	PlayerLevel      *int     `json:"playerLevel"`
	PreviousMissions []string `json:"previousMissions"`
	Character        string   `json:"character"`
}

// POST /api/mission/generate
func (h *Handler) GenerateMission(c *gin.Context) {
	var req generateMissionRequest
	if !bindJSON(c, &req) {
		return
	}

	res := h.services.Missions.GenerateChoice(c.Request.Context(), intOr(req.PlayerLevel, 1), req.PreviousMissions, req.Character)
	if res.Fallback {
		success(c, gin.H{"mission": res.Mission, "fallback": true})
		return
	}

	success(c, gin.H{"mission": res.Mission, "attempt": res.Attempt})
}

type scenarioRequest struct {
	Character      string `json:"character"`
	Level          *int   `json:"level"`
	ScenarioNumber *int   `json:"scenarioNumber"`
	Prompt         string `json:"prompt"`
	Language       string `json:"language"`
}

// POST /api/mission/generate-scenario
func (h *Handler) GenerateScenario(c *gin.Context) {
	var req scenarioRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.services.Missions.GenerateScenario(c.Request.Context(), service.ScenarioRequest{
		Character: req.Character,
		Level:     intOr(req.Level, 1),
		Number:    intOr(req.ScenarioNumber, 1),
		Prompt:    req.Prompt,
		Language:  req.Language,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	payload := gin.H{"scenario": res.Scenario}
	if res.Fallback {
		payload["fallback"] = true
	}
	success(c, payload)
}

type personalizedRequest struct {
	Level             *int     `json:"level"`
	CompletedMissions []string `json:"completedMissions"`
	WeakAreas         []string `json:"weakAreas"`
	Language          string   `json:"language"`
}

// POST /api/mission/personalized
func (h *Handler) PersonalizedMission(c *gin.Context) {
	var req personalizedRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.services.Missions.Personalized(c.Request.Context(), service.PersonalizedRequest{
		Level:     intOr(req.Level, 1),
		Completed: req.CompletedMissions,
		WeakAreas: req.WeakAreas,
		Language:  req.Language,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"content": content})
}

type completeMissionRequest struct {
	SessionID string `json:"session_id"`
	MissionID string `json:"mission_id"`
	XP        int    `json:"xp"`
}

// POST /api/mission/complete awards XP to the session user.
func (h *Handler) CompleteMission(c *gin.Context) {
	var req completeMissionRequest
	if !bindJSON(c, &req) {
		return
	}

	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID = req.SessionID
	}

	user, err := h.services.Auth.CompleteMission(c.Request.Context(), sessionID, req.MissionID, req.XP)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"user": user.Public()})
}
