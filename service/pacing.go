package service

import (
	"time"

	"bonificador/models"
)

// Pace ratios for the per-tier traffic light. The heuristic compares "how far
// through the goal" against "how far through the month": at or above 85% of
// the elapsed fraction is green, at or above 60% yellow, below that red.
const (
	greenPaceRatio  = 0.85
	yellowPaceRatio = 0.60
)

// Pacing holds the time-based requirements derived from a creator's progress:
// remaining days, required daily rates, and the traffic light plus projected
// completion date for every graduation tier.
type Pacing struct {
	EvaluationDate time.Time
	DayOfMonth     int
	DaysInMonth    int
	DaysRemaining  int

	// Toward the active graduation target
	NeededDiamonds    int64
	ReqDiamondsPerDay int64

	// Toward the active time-milestone
	HoursNeeded    float64
	ReqHoursPerDay float64

	TierStatuses []models.TierStatus
}

// ComputePacing derives the daily requirements and per-tier statuses for the
// given totals as of evalDate. evalDate is injected rather than read from the
// clock so past and future scenarios evaluate deterministically. All division
// is guarded: with no days remaining, rates are zero and no dates are
// projected.
func ComputePacing(agg models.MonthlyAggregate, progress Progress, evalDate time.Time) Pacing {
	p := Pacing{
		EvaluationDate: evalDate,
		DayOfMonth:     evalDate.Day(),
		DaysInMonth:    DaysInMonth(evalDate),
	}
	// Inclusive of today: on the last day of the month one day remains.
	p.DaysRemaining = p.DaysInMonth - p.DayOfMonth + 1
	if p.DaysRemaining < 0 {
		p.DaysRemaining = 0
	}

	if progress.TargetType == models.TargetTypeGraduation {
		p.NeededDiamonds = progress.TargetValue - agg.DiamondsLive
		if p.NeededDiamonds < 0 {
			p.NeededDiamonds = 0
		}
		p.ReqDiamondsPerDay = ceilDiv(p.NeededDiamonds, int64(p.DaysRemaining))
	}

	if !progress.MilestoneSatisfied {
		p.HoursNeeded = progress.ActiveMilestone.HoursRequired - agg.HoursLive
		if p.HoursNeeded < 0 {
			p.HoursNeeded = 0
		}
		if p.DaysRemaining > 0 {
			// Not ceiled: fractional hour rates are meaningful
			p.ReqHoursPerDay = p.HoursNeeded / float64(p.DaysRemaining)
		}
	}

	elapsedRatio := float64(p.DayOfMonth) / float64(p.DaysInMonth)
	p.TierStatuses = make([]models.TierStatus, 0, len(models.GraduationTiers))
	for _, threshold := range models.GraduationTiers {
		status := models.TierStatus{
			Threshold: threshold,
			Label:     models.TierLabel(threshold),
			Achieved:  agg.DiamondsLive >= threshold,
		}
		if !status.Achieved {
			status.Needed = threshold - agg.DiamondsLive
			status.RequiredPerDay = ceilDiv(status.Needed, int64(p.DaysRemaining))
		}
		status.Status = trafficLightFor(agg.DiamondsLive, threshold, elapsedRatio)
		if status.Needed > 0 && status.RequiredPerDay > 0 && p.DaysRemaining > 0 {
			daysNeeded := ceilDiv(status.Needed, status.RequiredPerDay)
			eta := evalDate.AddDate(0, 0, int(daysNeeded))
			status.ProjectedDate = &eta
		}
		p.TierStatuses = append(p.TierStatuses, status)
	}

	return p
}

// trafficLightFor computes the pacing status for one graduation threshold.
func trafficLightFor(diamonds, threshold int64, elapsedRatio float64) models.TrafficLight {
	if diamonds >= threshold {
		return models.TrafficLightGreen
	}
	progressRatio := float64(diamonds) / float64(threshold)
	switch {
	case progressRatio >= greenPaceRatio*elapsedRatio:
		return models.TrafficLightGreen
	case progressRatio >= yellowPaceRatio*elapsedRatio:
		return models.TrafficLightYellow
	default:
		return models.TrafficLightRed
	}
}

// ceilDiv returns ceil(a/b), or 0 when b is zero.
func ceilDiv(a, b int64) int64 {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
