package models

import "time"

// Session is an authenticated context identifying the acting user.
// Sessions are keyed by an opaque SessionID that is carried inside the
// signed session token.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is no longer valid at the given time.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
