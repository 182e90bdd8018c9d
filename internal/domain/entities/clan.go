package entities

import "time"

// Clan is a named group of web users competing on total XP.
type Clan struct {
	Name      string    `json:"name"`
	Leader    string    `json:"leader"` // leader email
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// ClanStanding is one row of the clan leaderboard.
type ClanStanding struct {
	Name        string   `json:"name"`
	TotalXP     int      `json:"total_xp"`
	MemberCount int      `json:"member_count"`
	Leader      string   `json:"leader"`
	Members     []string `json:"members"`
}

// MemberStatus describes a clan member's activity for one day.
type MemberStatus struct {
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	XP               int     `json:"xp"`
	AvatarURL        *string `json:"avatarUrl"`
	MissionCompleted bool    `json:"mission_completed_today"`
	MissionSkipped   bool    `json:"mission_skipped_today"`
	HasActivityToday bool    `json:"has_activity_today"`
}

// DailyActivity is a user's mission outcome for one day.
type DailyActivity struct {
	Email            string
	Day              time.Time
	MissionCompleted bool
	MissionSkipped   bool
	UpdatedAt        time.Time
}

// Merge applies a later report for the same day. Flags are only raised, and
// a completed mission is never also skipped.
func (a DailyActivity) Merge(next DailyActivity) DailyActivity {
	a.MissionCompleted = a.MissionCompleted || next.MissionCompleted
	a.MissionSkipped = !a.MissionCompleted && (a.MissionSkipped || next.MissionSkipped)
	a.UpdatedAt = next.UpdatedAt
	return a
}
