package models

import (
	"time"
)

// CreatorFailure records a per-creator persistence failure during a batch run.
type CreatorFailure struct {
	CreatorID   int64
	CreatorName string
	Err         string
}

// BatchResult summarizes one batch recomputation over all active creators.
// Failures never abort the batch; they are reported here instead.
type BatchResult struct {
	Month          time.Time
	EvaluationDate time.Time
	TotalCreators  int
	TotalProcessed int
	Failures       []CreatorFailure
}
