package model

import "time"

// Session is the externally-tracked "currently timing an activity" state.
// Watson owns the truth; the UI only mirrors it via the status command.
type Session struct {
	ActiveSince *time.Time
}

// Running reports whether a tracking session is active.
func (s Session) Running() bool {
	return s.ActiveSince != nil
}
