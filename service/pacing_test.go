package service

import (
	"testing"
	"time"

	"bonificador/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePacing_Requirements(t *testing.T) {
	midJune := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("daily diamond rate is ceiled", func(t *testing.T) {
		agg := aggWith(10, 30, 120_000)
		progress := EvaluateProgress(agg, 365)
		require.Equal(t, int64(300_000), progress.TargetValue)

		p := ComputePacing(agg, progress, midJune)

		assert.Equal(t, 16, p.DaysRemaining) // inclusive of the 15th
		assert.Equal(t, int64(180_000), p.NeededDiamonds)
		assert.Equal(t, int64(11_250), p.ReqDiamondsPerDay)
	})

	t.Run("hourly rate is fractional, not ceiled", func(t *testing.T) {
		agg := aggWith(10, 30, 120_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, midJune)

		assert.Equal(t, 10.0, p.HoursNeeded) // 40h milestone minus 30h streamed
		assert.InDelta(t, 0.625, p.ReqHoursPerDay, 1e-9)
	})

	t.Run("satisfied milestone needs no hours", func(t *testing.T) {
		agg := aggWith(25, 90, 120_000)
		progress := EvaluateProgress(agg, 365)
		require.True(t, progress.MilestoneSatisfied)

		p := ComputePacing(agg, progress, midJune)

		assert.Zero(t, p.HoursNeeded)
		assert.Zero(t, p.ReqHoursPerDay)
	})

	t.Run("last day of month has one day remaining", func(t *testing.T) {
		agg := aggWith(20, 70, 250_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, 1, p.DaysRemaining)
		assert.Equal(t, int64(50_000), p.ReqDiamondsPerDay)
	})

	t.Run("maintenance creator has no diamond requirement", func(t *testing.T) {
		agg := aggWith(25, 90, 1_200_000)
		progress := EvaluateProgress(agg, 365)
		require.Equal(t, models.TargetTypeMaintenance, progress.TargetType)

		p := ComputePacing(agg, progress, midJune)

		assert.Zero(t, p.NeededDiamonds)
		assert.Zero(t, p.ReqDiamondsPerDay)
	})
}

func TestComputePacing_TrafficLights(t *testing.T) {
	t.Run("achieved tier is green regardless of pace", func(t *testing.T) {
		// 500K reached exactly, late in the month
		agg := aggWith(24, 85, 500_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC))

		require.Len(t, p.TierStatuses, 4)
		for _, tier := range p.TierStatuses[:3] {
			assert.True(t, tier.Achieved, tier.Label)
			assert.Equal(t, models.TrafficLightGreen, tier.Status, tier.Label)
			assert.Zero(t, tier.Needed, tier.Label)
		}
		assert.False(t, p.TierStatuses[3].Achieved)
	})

	t.Run("95K of 100K on day 25 paces green", func(t *testing.T) {
		agg := aggWith(20, 70, 95_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, models.TrafficLightGreen, p.TierStatuses[0].Status)
		assert.Equal(t, int64(5_000), p.TierStatuses[0].Needed)
		assert.Equal(t, int64(834), p.TierStatuses[0].RequiredPerDay) // ceil(5000/6)
	})

	t.Run("mid-month ladder degrades from yellow to red", func(t *testing.T) {
		// Day 15 of 30: elapsed 50%. 120K is 40% of 300K (yellow band),
		// 24% of 500K and 12% of 1M (both red).
		agg := aggWith(10, 30, 120_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, models.TrafficLightGreen, p.TierStatuses[0].Status)
		assert.Equal(t, models.TrafficLightYellow, p.TierStatuses[1].Status)
		assert.Equal(t, models.TrafficLightRed, p.TierStatuses[2].Status)
		assert.Equal(t, models.TrafficLightRed, p.TierStatuses[3].Status)
	})
}

func TestComputePacing_ProjectedDates(t *testing.T) {
	t.Run("projection lands required-days out from the evaluation date", func(t *testing.T) {
		agg := aggWith(10, 30, 120_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

		tier := p.TierStatuses[1] // 300K
		require.NotNil(t, tier.ProjectedDate)
		// 180K needed at 11,250/day is 16 days: June 15 + 16
		assert.Equal(t, "2025-07-01", tier.ProjectedDate.Format("2006-01-02"))
	})

	t.Run("achieved tiers have no projection", func(t *testing.T) {
		agg := aggWith(10, 30, 120_000)
		progress := EvaluateProgress(agg, 365)

		p := ComputePacing(agg, progress, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

		assert.Nil(t, p.TierStatuses[0].ProjectedDate)
	})
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, int64(0), ceilDiv(0, 5))
	assert.Equal(t, int64(0), ceilDiv(100, 0))
	assert.Equal(t, int64(1), ceilDiv(1, 5))
	assert.Equal(t, int64(2), ceilDiv(6, 5))
	assert.Equal(t, int64(2), ceilDiv(10, 5))
}
