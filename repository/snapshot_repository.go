package repository

import (
	"context"
	"fmt"
	"time"

	"bonificador/database"
	"bonificador/models"
)

// SnapshotRepository implements the SnapshotRepository interface
type SnapshotRepository struct {
	q queryable
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *database.DB) *SnapshotRepository {
	return &SnapshotRepository{q: db.Pool}
}

// GetForCreatorMonth returns all snapshot rows for a creator with stat_date
// in [from, to). Duplicate rows per date are returned as-is; the aggregator's
// max semantics absorb them.
func (r *SnapshotRepository) GetForCreatorMonth(ctx context.Context, creatorID int64, from, to time.Time) ([]*models.DailySnapshotRow, error) {
	query := `
		SELECT id, creator_id, stat_date, cumulative_diamonds, cumulative_hours, uploaded_at
		FROM creator_daily_stats
		WHERE creator_id = $1
		  AND stat_date >= $2
		  AND stat_date < $3
		ORDER BY stat_date, id
	`

	rows, err := r.q.Query(ctx, query, creatorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots for creator %d: %w", creatorID, err)
	}
	defer rows.Close()

	var snapshots []*models.DailySnapshotRow
	for rows.Next() {
		var snap models.DailySnapshotRow
		err := rows.Scan(
			&snap.ID,
			&snap.CreatorID,
			&snap.Date,
			&snap.CumulativeDiamonds,
			&snap.CumulativeHours,
			&snap.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}

// Insert writes one snapshot row. The importer collaborator owns ingestion;
// this exists for tests and backoffice tooling. Re-uploads intentionally
// create duplicate rows rather than updating in place.
func (r *SnapshotRepository) Insert(ctx context.Context, snap *models.DailySnapshotRow) error {
	query := `
		INSERT INTO creator_daily_stats (creator_id, stat_date, cumulative_diamonds, cumulative_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`

	err := r.q.QueryRow(ctx, query,
		snap.CreatorID,
		snap.Date,
		snap.CumulativeDiamonds,
		snap.CumulativeHours,
	).Scan(&snap.ID, &snap.UploadedAt)

	if err != nil {
		return fmt.Errorf("failed to insert snapshot for creator %d on %s: %w",
			snap.CreatorID, snap.Date.Format("2006-01-02"), err)
	}

	return nil
}
