package models

import (
	"time"
)

// TargetType classifies the creator's next objective.
type TargetType string

const (
	TargetTypeGraduation  TargetType = "graduation"
	TargetTypeMaintenance TargetType = "maintenance"
)

// TierStatus is the pacing state of one graduation threshold. Every tier gets
// one, not just the active target, so managers can see the whole ladder.
type TierStatus struct {
	Threshold      int64        `json:"threshold"`
	Label          string       `json:"label"`
	Achieved       bool         `json:"achieved"`
	Needed         int64        `json:"needed"`
	RequiredPerDay int64        `json:"required_per_day"`
	Status         TrafficLight `json:"status"`
	ProjectedDate  *time.Time   `json:"projected_date,omitempty"`
}

// BonificacionRecord is the evaluated monthly progress state for one creator,
// upserted by (creator_id, mes_referencia) on every run. Downstream consumers
// (dashboards, messaging) read it but never mutate it.
type BonificacionRecord struct {
	CreatorID int64     `db:"creator_id"`
	Month     time.Time `db:"mes_referencia"`

	// Aggregated month-to-date totals
	DaysLive      int     `db:"days_live"`
	HoursLive     float64 `db:"hours_live"`
	DiamondsLive  int64   `db:"diamonds_live"`
	DaysRemaining int     `db:"days_remaining"`

	// Time-milestone flags (hitos)
	Hito12d40h bool `db:"hito_12d_40h"`
	Hito20d60h bool `db:"hito_20d_60h"`
	Hito22d80h bool `db:"hito_22d_80h"`

	// Graduation flags
	Grad100k bool `db:"grad_100k"`
	Grad300k bool `db:"grad_300k"`
	Grad500k bool `db:"grad_500k"`
	Grad1m   bool `db:"grad_1m"`

	// Continuity bonus
	ExtraDays int `db:"extra_days"`
	BonusUSD  int `db:"bonus_usd"`

	// Active target and pacing
	TargetType        TargetType `db:"target_type"`
	TargetValue       int64      `db:"target_value"` // 0 in maintenance state
	Priority300k      bool       `db:"priority_300k"`
	NearTarget        bool       `db:"near_target"`
	ReqDiamondsPerDay int64      `db:"req_diamonds_per_day"`
	ReqHoursPerDay    float64    `db:"req_hours_per_day"`

	// Per-tier traffic lights and projections, stored as JSONB
	TierStatuses []TierStatus `db:"tier_statuses"`

	// Composed coaching texts, handed to the messaging collaborator verbatim
	CreatorMessage string `db:"creator_message"`
	ManagerMessage string `db:"manager_message"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ActiveTierStatus returns the status entry for the active graduation target,
// or nil when the creator is in maintenance state.
func (r *BonificacionRecord) ActiveTierStatus() *TierStatus {
	if r.TargetType != TargetTypeGraduation {
		return nil
	}
	for i := range r.TierStatuses {
		if r.TierStatuses[i].Threshold == r.TargetValue {
			return &r.TierStatuses[i]
		}
	}
	return nil
}
