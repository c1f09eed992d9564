package testutil

import (
	"time"

	"bonificador/models"
)

// CreateTestCreator creates a creator with default values, joined well over
// the priority-override tenure window
func CreateTestCreator(name string) *models.Creator {
	return &models.Creator{
		Name:           name,
		TikTokUsername: "@" + name,
		Phone:          "5512345678",
		JoinedAt:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Active:         true,
	}
}

// CreateTestCreatorJoined creates a creator with a specific join date
func CreateTestCreatorJoined(name string, joinedAt time.Time) *models.Creator {
	creator := CreateTestCreator(name)
	creator.JoinedAt = joinedAt
	return creator
}

// CreateTestSnapshot creates one cumulative daily snapshot row
func CreateTestSnapshot(creatorID int64, date time.Time, diamonds int64, hours float64) *models.DailySnapshotRow {
	return &models.DailySnapshotRow{
		CreatorID:          creatorID,
		Date:               date,
		CumulativeDiamonds: diamonds,
		CumulativeHours:    hours,
	}
}

// CreateTestBonificacion creates a record for a given creator and month with
// plausible mid-month numbers
func CreateTestBonificacion(creatorID int64, month time.Time) *models.BonificacionRecord {
	return &models.BonificacionRecord{
		CreatorID:         creatorID,
		Month:             month,
		DaysLive:          14,
		HoursLive:         48.5,
		DiamondsLive:      120_000,
		DaysRemaining:     12,
		Hito12d40h:        true,
		Grad100k:          true,
		TargetType:        models.TargetTypeGraduation,
		TargetValue:       300_000,
		ReqDiamondsPerDay: 15_000,
		TierStatuses: []models.TierStatus{
			{Threshold: 100_000, Label: "100K", Achieved: true, Status: models.TrafficLightGreen},
			{Threshold: 300_000, Label: "300K", Needed: 180_000, RequiredPerDay: 15_000, Status: models.TrafficLightYellow},
		},
		CreatorMessage: "¡Vas muy bien!",
		ManagerMessage: "Seguimiento estándar",
	}
}
