package models

import (
	"time"
)

// Creator represents a live-streaming creator managed by the agency
type Creator struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	TikTokUsername string    `db:"tiktok_username"`
	Phone          string    `db:"phone"`
	JoinedAt       time.Time `db:"joined_at"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// TenureDays returns the number of whole days since the creator joined the
// agency, as of the given date. Derived rather than stored so that evaluating
// a past month stays deterministic.
func (c *Creator) TenureDays(asOf time.Time) int {
	days := int(asOf.Sub(c.JoinedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
