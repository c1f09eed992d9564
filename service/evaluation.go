package service

import (
	"time"

	"bonificador/models"
)

// Evaluation bundles the full evaluated state for one creator/month: the
// aggregate totals, the milestone/graduation position, the pacing numbers and
// the continuity bonus. It is the single input to the message composer and
// the source of the persisted record.
type Evaluation struct {
	Creator   *models.Creator
	Aggregate models.MonthlyAggregate
	Progress  Progress
	Pacing    Pacing
	ExtraDays int
	BonusUSD  int
}

// EvaluateCreator runs the whole pipeline for one creator: aggregate the
// snapshot rows, evaluate progress, compute pacing and the continuity bonus.
// evalDate is clamped into the target month so past and future months
// evaluate deterministically.
func EvaluateCreator(creator *models.Creator, month time.Time, rows []*models.DailySnapshotRow, evalDate time.Time) *Evaluation {
	evalDate = ClampEvaluationDate(evalDate, month)

	agg := AggregateMonth(creator.ID, month, rows)
	progress := EvaluateProgress(agg, creator.TenureDays(evalDate))
	pacing := ComputePacing(agg, progress, evalDate)
	extraDays, bonusUSD := ComputeContinuityBonus(agg.DaysLive)

	return &Evaluation{
		Creator:   creator,
		Aggregate: agg,
		Progress:  progress,
		Pacing:    pacing,
		ExtraDays: extraDays,
		BonusUSD:  bonusUSD,
	}
}

// Record assembles the persistable BonificacionRecord, including both
// composed messages.
func (e *Evaluation) Record() *models.BonificacionRecord {
	creatorMsg, managerMsg := ComposeMessages(e)

	rec := &models.BonificacionRecord{
		CreatorID:     e.Creator.ID,
		Month:         e.Aggregate.Month,
		DaysLive:      e.Aggregate.DaysLive,
		HoursLive:     e.Aggregate.HoursLive,
		DiamondsLive:  e.Aggregate.DiamondsLive,
		DaysRemaining: e.Pacing.DaysRemaining,

		Hito12d40h: models.TimeMilestones[0].SatisfiedBy(e.Aggregate.DaysLive, e.Aggregate.HoursLive),
		Hito20d60h: models.TimeMilestones[1].SatisfiedBy(e.Aggregate.DaysLive, e.Aggregate.HoursLive),
		Hito22d80h: models.TimeMilestones[2].SatisfiedBy(e.Aggregate.DaysLive, e.Aggregate.HoursLive),

		Grad100k: e.Aggregate.DiamondsLive >= 100_000,
		Grad300k: e.Aggregate.DiamondsLive >= 300_000,
		Grad500k: e.Aggregate.DiamondsLive >= 500_000,
		Grad1m:   e.Aggregate.DiamondsLive >= 1_000_000,

		ExtraDays: e.ExtraDays,
		BonusUSD:  e.BonusUSD,

		TargetType:        e.Progress.TargetType,
		TargetValue:       e.Progress.TargetValue,
		Priority300k:      e.Progress.Priority300k,
		NearTarget:        e.Progress.NearTarget,
		ReqDiamondsPerDay: e.Pacing.ReqDiamondsPerDay,
		ReqHoursPerDay:    e.Pacing.ReqHoursPerDay,

		TierStatuses: e.Pacing.TierStatuses,

		CreatorMessage: creatorMsg,
		ManagerMessage: managerMsg,
	}
	return rec
}
