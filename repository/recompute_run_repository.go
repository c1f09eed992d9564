package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bonificador/database"
	"bonificador/models"

	"github.com/jackc/pgx/v5"
)

// RecomputeRunRepository implements the RecomputeRunRepository interface
type RecomputeRunRepository struct {
	q queryable
}

// NewRecomputeRunRepository creates a new recompute run repository
func NewRecomputeRunRepository(db *database.DB) *RecomputeRunRepository {
	return &RecomputeRunRepository{q: db.Pool}
}

// Create records one batch invocation
func (r *RecomputeRunRepository) Create(ctx context.Context, run *models.RecomputeRun) error {
	summaryJSON, err := json.Marshal(run.ExecutionSummary)
	if err != nil {
		return fmt.Errorf("failed to marshal execution summary: %w", err)
	}

	query := `
		INSERT INTO recompute_runs
		(mes_referencia, run_date, creators_processed, creators_failed, execution_summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		run.Month,
		run.RunDate,
		run.CreatorsProcessed,
		run.CreatorsFailed,
		summaryJSON,
	).Scan(&run.ID, &run.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create recompute run for month %s: %w",
			run.Month.Format("2006-01"), err)
	}

	return nil
}

// GetLatest returns the most recent recompute run
func (r *RecomputeRunRepository) GetLatest(ctx context.Context) (*models.RecomputeRun, error) {
	query := `
		SELECT id, mes_referencia, run_date, creators_processed, creators_failed,
		       execution_summary, created_at
		FROM recompute_runs
		ORDER BY run_date DESC
		LIMIT 1
	`

	var run models.RecomputeRun
	var summaryJSON []byte

	err := r.q.QueryRow(ctx, query).Scan(
		&run.ID,
		&run.Month,
		&run.RunDate,
		&run.CreatorsProcessed,
		&run.CreatorsFailed,
		&summaryJSON,
		&run.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest recompute run: %w", err)
	}

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &run.ExecutionSummary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal execution summary: %w", err)
		}
	}

	return &run, nil
}
