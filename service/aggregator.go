package service

import (
	"time"

	"bonificador/models"
)

// minimum hours for a day to count as a valid live day when no diamonds were
// earned that day
const validLiveDayMinHours = 1.0

// AggregateMonth reduces a creator's daily snapshot rows for one month into a
// single totals record.
//
// The source exports are month-to-date cumulative snapshots, and re-uploads can
// insert duplicate rows for a date, so totals are taken as the maximum over all
// rows rather than a sum — summing cumulative snapshots would overcount. The
// same property makes the reduction idempotent: feeding it the same rows twice
// yields the same aggregate.
func AggregateMonth(creatorID int64, month time.Time, rows []*models.DailySnapshotRow) models.MonthlyAggregate {
	agg := models.MonthlyAggregate{
		CreatorID: creatorID,
		Month:     MonthOf(month),
	}

	liveDays := make(map[string]struct{})
	for _, row := range rows {
		if row.CumulativeHours > agg.HoursLive {
			agg.HoursLive = row.CumulativeHours
		}
		if row.CumulativeDiamonds > agg.DiamondsLive {
			agg.DiamondsLive = row.CumulativeDiamonds
		}
		// A valid live day has diamonds recorded or at least one hour
		// streamed. Distinct dates only, so duplicate uploads never
		// double-count.
		if row.CumulativeDiamonds > 0 || row.CumulativeHours >= validLiveDayMinHours {
			liveDays[row.Date.Format("2006-01-02")] = struct{}{}
		}
	}
	agg.DaysLive = len(liveDays)

	return agg
}
