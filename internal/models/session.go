package models

import "time"

// MoveSession stores one browser's wizard state as an opaque JSON snapshot,
// keyed by the token carried in the session cookie.
type MoveSession struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null;uniqueIndex;size:64"`
	Snapshot  string // JSON, see session.Snapshot; may be empty or stale
	CreatedAt time.Time
	UpdatedAt time.Time
}
