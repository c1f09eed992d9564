package models

import (
	"fmt"
)

// TimeMilestone is a combined days-streamed + hours-streamed threshold (a
// "hito"). Both thresholds must be met for the milestone to count.
type TimeMilestone struct {
	DaysRequired  int
	HoursRequired float64
}

// Label renders the milestone in the product's short form, e.g. "12d/40h".
func (m TimeMilestone) Label() string {
	return fmt.Sprintf("%dd/%.0fh", m.DaysRequired, m.HoursRequired)
}

// SatisfiedBy reports whether the given totals meet both thresholds.
func (m TimeMilestone) SatisfiedBy(daysLive int, hoursLive float64) bool {
	return daysLive >= m.DaysRequired && hoursLive >= m.HoursRequired
}

// TimeMilestones is the ordered catalog of time milestones. The active
// milestone is the first one not yet satisfied; once all are satisfied the
// last entry stays active in its terminal state.
var TimeMilestones = []TimeMilestone{
	{DaysRequired: 12, HoursRequired: 40},
	{DaysRequired: 20, HoursRequired: 60},
	{DaysRequired: 22, HoursRequired: 80},
}

// GraduationTiers is the ordered catalog of cumulative-diamond thresholds.
var GraduationTiers = []int64{100_000, 300_000, 500_000, 1_000_000}

// TierLabel renders a graduation threshold in the product's short form,
// e.g. "300K" or "1M".
func TierLabel(threshold int64) string {
	if threshold >= 1_000_000 && threshold%1_000_000 == 0 {
		return fmt.Sprintf("%dM", threshold/1_000_000)
	}
	return fmt.Sprintf("%dK", threshold/1_000)
}

// TrafficLight is the pacing status comparing goal progress against time
// elapsed in the month (the "semáforo").
type TrafficLight string

const (
	TrafficLightGreen  TrafficLight = "green"
	TrafficLightYellow TrafficLight = "yellow"
	TrafficLightRed    TrafficLight = "red"
)

// Glyph returns the emoji used in manager-facing messages.
func (t TrafficLight) Glyph() string {
	switch t {
	case TrafficLightGreen:
		return "🟢"
	case TrafficLightYellow:
		return "🟡"
	default:
		return "🔴"
	}
}
