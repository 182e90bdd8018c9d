package entities

import (
	"slices"
	"time"
)

const (
	DefaultEnergy = 100
	dayLayout     = "2006-01-02"
)

// User is a learner. Web accounts have an email and a password hash,
// Telegram learners have a TelegramID; one record may have both.
type User struct {
	ID                string     // uuid
	TelegramID        *int64     // Telegram user ID, nil for web-only accounts
	Name              string     // display name
	Email             string     // empty for Telegram-only learners
	PasswordHash      string     // bcrypt hash
	LegacyPassword    string     // plaintext password imported from old data, migrated on login
	XP                int        // experience points
	Level             int        // 1..6, derived from XP
	Energy            int        // web game energy
	Streak            int        // consecutive active days
	Skill             SkillLevel // adaptive difficulty
	Language          Language   // interface language
	AvatarURL         *string    // optional avatar
	Clan              string     // clan name, empty when not in a clan
	CompletedMissions []string   // lesson titles or mission ids
	Achievements      []string   // earned achievement codes
	WeakAreas         []string   // topics to focus on
	LastActiveDay     time.Time  // UTC date of the last mission
	CreatedAt         time.Time
	LastLogin         time.Time
}

// NewWebUser creates a registered web account with starting stats.
func NewWebUser(id, name, email, passwordHash string, now time.Time) *User {
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Level:        MinLevel,
		Energy:       DefaultEnergy,
		Skill:        SkillBeginner,
		Language:     LanguageKZ,
		CreatedAt:    now,
		LastLogin:    now,
	}
}

// NewTelegramUser creates a bot learner.
func NewTelegramUser(id string, telegramID int64, name string, now time.Time) *User {
	return &User{
		ID:         id,
		TelegramID: &telegramID,
		Name:       name,
		Level:      MinLevel,
		Energy:     DefaultEnergy,
		Skill:      SkillBeginner,
		Language:   LanguageKZ,
		CreatedAt:  now,
		LastLogin:  now,
	}
}

// AddXP adds experience and recomputes the level.
func (u *User) AddXP(xp int) {
	u.XP += xp
	u.Level = LevelForXP(u.XP)
}

// TouchDay records activity on the day of now. The streak grows when the
// previous active day was yesterday and restarts otherwise. It returns true
// when now starts a new active day.
func (u *User) TouchDay(now time.Time) bool {
	today := truncateDay(now)
	if !u.LastActiveDay.IsZero() && truncateDay(u.LastActiveDay).Equal(today) {
		return false
	}

	if !u.LastActiveDay.IsZero() && truncateDay(u.LastActiveDay).AddDate(0, 0, 1).Equal(today) {
		u.Streak++
	} else {
		u.Streak = 1
	}
	u.LastActiveDay = today

	return true
}

// HasAchievement reports whether the achievement code was already earned.
func (u *User) HasAchievement(code string) bool {
	return slices.Contains(u.Achievements, code)
}

// CompleteMission appends the mission once.
func (u *User) CompleteMission(mission string) {
	if mission == "" || slices.Contains(u.CompletedMissions, mission) {
		return
	}
	u.CompletedMissions = append(u.CompletedMissions, mission)
}

// PublicUser is the client-facing view of a user without password fields.
type PublicUser struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	XP                int      `json:"xp"`
	Level             int      `json:"level"`
	Energy            int      `json:"energy"`
	Streak            int      `json:"streak"`
	SkillLevel        string   `json:"skill_level"`
	Language          string   `json:"language"`
	AvatarURL         *string  `json:"avatarUrl"`
	Clan              string   `json:"clan,omitempty"`
	CompletedMissions []string `json:"completedMissions"`
	Achievements      []string `json:"achievements"`
	WeakAreas         []string `json:"weakAreas"`
	CreatedAt         string   `json:"createdAt"`
	LastLogin         string   `json:"lastLogin"`
}

// Public returns the view of u that is safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		XP:                u.XP,
		Level:             u.Level,
		Energy:            u.Energy,
		Streak:            u.Streak,
		SkillLevel:        string(u.Skill),
		Language:          u.Language.Locale(),
		AvatarURL:         u.AvatarURL,
		Clan:              u.Clan,
		CompletedMissions: nonNil(u.CompletedMissions),
		Achievements:      nonNil(u.Achievements),
		WeakAreas:         nonNil(u.WeakAreas),
		CreatedAt:         u.CreatedAt.Format(time.RFC3339),
		LastLogin:         u.LastLogin.Format(time.RFC3339),
	}
}

// FormatDay formats a date the way activity days are keyed.
func FormatDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
