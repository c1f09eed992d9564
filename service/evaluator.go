package service

import (
	"bonificador/models"
)

// Tenure and diamond cutoffs for the new-creator focus rule: creators in
// their first 90 days are steered to the 300K graduation regardless of
// catalog order.
const (
	priorityTenureDays = 90
	priorityTierValue  = 300_000
)

// Fraction of the target remaining under which a creator counts as "near" it.
const nearTargetFraction = 0.15

// Progress is the evaluated position of a creator against the milestone and
// graduation catalogs. All fields are total functions of the inputs; there are
// no failure modes.
type Progress struct {
	// ActiveMilestone is the first catalog milestone not yet satisfied, or
	// the terminal one when everything is satisfied.
	ActiveMilestone    models.TimeMilestone
	MilestoneIndex     int
	MilestoneSatisfied bool // true only when the whole catalog is satisfied

	TargetType   models.TargetType
	TargetValue  int64 // active graduation threshold, 0 in maintenance
	Priority300k bool
	NearTarget   bool
}

// EvaluateProgress determines the active time-milestone and graduation target
// for the given monthly totals.
func EvaluateProgress(agg models.MonthlyAggregate, tenureDays int) Progress {
	p := Progress{}

	// Active milestone: first catalog entry missing either threshold.
	p.MilestoneIndex = len(models.TimeMilestones) - 1
	p.MilestoneSatisfied = true
	for i, m := range models.TimeMilestones {
		if !m.SatisfiedBy(agg.DaysLive, agg.HoursLive) {
			p.MilestoneIndex = i
			p.MilestoneSatisfied = false
			break
		}
	}
	p.ActiveMilestone = models.TimeMilestones[p.MilestoneIndex]

	// New-creator focus rule takes priority over catalog order.
	if tenureDays < priorityTenureDays && agg.DiamondsLive < priorityTierValue {
		p.TargetType = models.TargetTypeGraduation
		p.TargetValue = priorityTierValue
		p.Priority300k = true
	} else {
		p.TargetType = models.TargetTypeMaintenance
		for _, threshold := range models.GraduationTiers {
			if agg.DiamondsLive < threshold {
				p.TargetType = models.TargetTypeGraduation
				p.TargetValue = threshold
				break
			}
		}
	}

	if p.TargetType == models.TargetTypeGraduation {
		remaining := p.TargetValue - agg.DiamondsLive
		p.NearTarget = remaining > 0 && float64(remaining) < nearTargetFraction*float64(p.TargetValue)
	}

	return p
}
