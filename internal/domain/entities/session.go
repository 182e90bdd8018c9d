package entities

import "time"

// Session is a web login session identified by a random id.
type Session struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// NewSession creates a session started at now.
func NewSession(id, email string, now time.Time) *Session {
	return &Session{
		ID:           id,
		Email:        email,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Expired reports whether the session is older than ttl. Age is counted from
// creation, activity does not extend it.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}
