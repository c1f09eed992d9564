package models

import (
	"time"
)

// RecomputeRun is the audit record for one batch recomputation pass.
type RecomputeRun struct {
	ID                int64                  `db:"id"`
	Month             time.Time              `db:"mes_referencia"`
	RunDate           time.Time              `db:"run_date"`
	CreatorsProcessed int                    `db:"creators_processed"`
	CreatorsFailed    int                    `db:"creators_failed"`
	ExecutionSummary  map[string]interface{} `db:"execution_summary"`
	CreatedAt         time.Time              `db:"created_at"`
}
