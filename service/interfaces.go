package service

import (
	"context"
	"time"

	"bonificador/events"
	"bonificador/models"
)

// CreatorRepository defines the interface for creator data access
type CreatorRepository interface {
	// GetByID retrieves a creator by ID, or nil when not found
	GetByID(ctx context.Context, id int64) (*models.Creator, error)

	// GetActive returns all active creators ordered by ID
	GetActive(ctx context.Context) ([]*models.Creator, error)
}

// SnapshotRepository defines the interface for daily snapshot data access
type SnapshotRepository interface {
	// GetForCreatorMonth returns all snapshot rows for a creator with
	// stat_date in [from, to)
	GetForCreatorMonth(ctx context.Context, creatorID int64, from, to time.Time) ([]*models.DailySnapshotRow, error)
}

// BonificacionRepository defines the interface for the computed monthly records
type BonificacionRepository interface {
	// Upsert writes a record keyed by (creator_id, mes_referencia),
	// overwriting any previous run's output (last write wins)
	Upsert(ctx context.Context, record *models.BonificacionRecord) error

	// GetByCreatorMonth retrieves one record, or nil when not found
	GetByCreatorMonth(ctx context.Context, creatorID int64, month time.Time) (*models.BonificacionRecord, error)

	// ListByMonth returns all records for a month ordered by diamonds descending
	ListByMonth(ctx context.Context, month time.Time) ([]*models.BonificacionRecord, error)
}

// RecomputeRunRepository defines the interface for batch audit records
type RecomputeRunRepository interface {
	// Create records one batch invocation
	Create(ctx context.Context, run *models.RecomputeRun) error

	// GetLatest returns the most recent run, or nil when none exist
	GetLatest(ctx context.Context) (*models.RecomputeRun, error)
}

// BatchService defines the interface for batch recomputation
type BatchService interface {
	// RunForMonth recomputes all active creators for the given month
	RunForMonth(ctx context.Context, month time.Time) (*models.BatchResult, error)

	// RunForMonthKey parses and validates a YYYY-MM or YYYY-MM-01 month key
	// before any per-creator work begins
	RunForMonthKey(ctx context.Context, monthKey string) (*models.BatchResult, error)

	// RunCurrentMonth recomputes all active creators for the current month
	RunCurrentMonth(ctx context.Context) (*models.BatchResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
