package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

type clanRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// POST /api/clans/create
func (h *Handler) CreateClan(c *gin.Context) {
	var req clanRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Clans.Create(c.Request.Context(), req.Name, req.Email); err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"message": fmt.Sprintf("Клан %s создан", req.Name)})
}

// POST /api/clans/join
func (h *Handler) JoinClan(c *gin.Context) {
	var req clanRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Clans.Join(c.Request.Context(), req.Name, req.Email); err != nil {
		h.handleError(c, err)
		return
	}

	success(c, gin.H{"message": fmt.Sprintf("Вы вступили в клан %s", req.Name)})
}

type clanView struct {
	Leader    string   `json:"leader"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"created_at"`
}

// GET /api/clans/list returns clans keyed by name.
func (h *Handler) ListClans(c *gin.Context) {
	clans, err := h.services.Clans.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	out := make(map[string]clanView, len(clans))
	for _, clan := range clans {
		members := clan.Members
		if members == nil {
			members = []string{}
		}
		out[clan.Name] = clanView{
			Leader:    clan.Leader,
			Members:   members,
			CreatedAt: entities.FormatDay(clan.CreatedAt),
		}
	}

	success(c, gin.H{"clans": out})
}

type activityRequest struct {
	Email            string `json:"email"`
	MissionCompleted bool   `json:"mission_completed"`
	MissionSkipped   bool   `json:"mission_skipped"`
}

// POST /api/clans/activity
func (h *Handler) TrackClanActivity(c *gin.Context) {
	var req activityRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.services.Clans.TrackActivity(c.Request.Context(), req.Email, req.MissionCompleted, req.MissionSkipped)
	if err != nil {
		h.handleError(c, err)
		return
	}

	success(c, nil)
}

// GET /api/clans/members/status?email=
func (h *Handler) ClanMembersStatus(c *gin.Context) {
	status, err := h.services.Clans.MembersStatus(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	members := status.Members
	if members == nil {
		members = []entities.MemberStatus{}
	}

	success(c, gin.H{
		"clan_name": status.ClanName,
		"members":   members,
		"date":      status.Day,
	})
}

// GET /api/clans/leaderboard
func (h *Handler) ClanLeaderboard(c *gin.Context) {
	standings, err := h.services.Clans.Leaderboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	if standings == nil {
		standings = []entities.ClanStanding{}
	}

	success(c, gin.H{"leaderboard": standings})
}
