package models

import (
	"time"
)

// DailySnapshotRow is one month-to-date cumulative snapshot for a creator as
// of a given date. The Excel exports the platform produces are cumulative, not
// daily deltas, and re-uploads can produce multiple rows for the same
// creator/date pair.
type DailySnapshotRow struct {
	ID                 int64     `db:"id"`
	CreatorID          int64     `db:"creator_id"`
	Date               time.Time `db:"stat_date"`
	CumulativeDiamonds int64     `db:"cumulative_diamonds"`
	CumulativeHours    float64   `db:"cumulative_hours"`
	UploadedAt         time.Time `db:"uploaded_at"`
}
