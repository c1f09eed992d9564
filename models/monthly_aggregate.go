package models

import (
	"time"
)

// MonthlyAggregate holds one creator's month-to-date totals, reduced from the
// daily snapshot rows. Recomputed on every run and never persisted on its own.
type MonthlyAggregate struct {
	CreatorID    int64
	Month        time.Time // first day of the month
	DaysLive     int
	HoursLive    float64
	DiamondsLive int64
}

// IsZero reports whether the aggregate shows no recorded activity at all.
func (a MonthlyAggregate) IsZero() bool {
	return a.DaysLive == 0 && a.HoursLive == 0 && a.DiamondsLive == 0
}
