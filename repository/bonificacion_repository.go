package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bonificador/database"
	"bonificador/models"

	"github.com/jackc/pgx/v5"
)

// BonificacionRepository implements the BonificacionRepository interface
type BonificacionRepository struct {
	q queryable
}

// NewBonificacionRepository creates a new bonificación repository
func NewBonificacionRepository(db *database.DB) *BonificacionRepository {
	return &BonificacionRepository{q: db.Pool}
}

const bonificacionColumns = `
	creator_id, mes_referencia, days_live, hours_live, diamonds_live, days_remaining,
	hito_12d_40h, hito_20d_60h, hito_22d_80h,
	grad_100k, grad_300k, grad_500k, grad_1m,
	extra_days, bonus_usd,
	target_type, target_value, priority_300k, near_target,
	req_diamonds_per_day, req_hours_per_day,
	tier_statuses, creator_message, manager_message,
	created_at, updated_at
`

// Upsert writes a record keyed by (creator_id, mes_referencia). Reruns for
// the same month overwrite the previous output; last write wins.
func (r *BonificacionRepository) Upsert(ctx context.Context, record *models.BonificacionRecord) error {
	tierJSON, err := json.Marshal(record.TierStatuses)
	if err != nil {
		return fmt.Errorf("failed to marshal tier statuses: %w", err)
	}

	query := `
		INSERT INTO creator_bonificaciones (
			creator_id, mes_referencia, days_live, hours_live, diamonds_live, days_remaining,
			hito_12d_40h, hito_20d_60h, hito_22d_80h,
			grad_100k, grad_300k, grad_500k, grad_1m,
			extra_days, bonus_usd,
			target_type, target_value, priority_300k, near_target,
			req_diamonds_per_day, req_hours_per_day,
			tier_statuses, creator_message, manager_message
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (creator_id, mes_referencia) DO UPDATE SET
			days_live = EXCLUDED.days_live,
			hours_live = EXCLUDED.hours_live,
			diamonds_live = EXCLUDED.diamonds_live,
			days_remaining = EXCLUDED.days_remaining,
			hito_12d_40h = EXCLUDED.hito_12d_40h,
			hito_20d_60h = EXCLUDED.hito_20d_60h,
			hito_22d_80h = EXCLUDED.hito_22d_80h,
			grad_100k = EXCLUDED.grad_100k,
			grad_300k = EXCLUDED.grad_300k,
			grad_500k = EXCLUDED.grad_500k,
			grad_1m = EXCLUDED.grad_1m,
			extra_days = EXCLUDED.extra_days,
			bonus_usd = EXCLUDED.bonus_usd,
			target_type = EXCLUDED.target_type,
			target_value = EXCLUDED.target_value,
			priority_300k = EXCLUDED.priority_300k,
			near_target = EXCLUDED.near_target,
			req_diamonds_per_day = EXCLUDED.req_diamonds_per_day,
			req_hours_per_day = EXCLUDED.req_hours_per_day,
			tier_statuses = EXCLUDED.tier_statuses,
			creator_message = EXCLUDED.creator_message,
			manager_message = EXCLUDED.manager_message,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err = r.q.QueryRow(ctx, query,
		record.CreatorID,
		record.Month,
		record.DaysLive,
		record.HoursLive,
		record.DiamondsLive,
		record.DaysRemaining,
		record.Hito12d40h,
		record.Hito20d60h,
		record.Hito22d80h,
		record.Grad100k,
		record.Grad300k,
		record.Grad500k,
		record.Grad1m,
		record.ExtraDays,
		record.BonusUSD,
		record.TargetType,
		record.TargetValue,
		record.Priority300k,
		record.NearTarget,
		record.ReqDiamondsPerDay,
		record.ReqHoursPerDay,
		tierJSON,
		record.CreatorMessage,
		record.ManagerMessage,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert bonificación for creator %d month %s: %w",
			record.CreatorID, record.Month.Format("2006-01"), err)
	}

	return nil
}

// GetByCreatorMonth retrieves one record, or nil when not found
func (r *BonificacionRepository) GetByCreatorMonth(ctx context.Context, creatorID int64, month time.Time) (*models.BonificacionRecord, error) {
	query := `SELECT ` + bonificacionColumns + `
		FROM creator_bonificaciones
		WHERE creator_id = $1 AND mes_referencia = $2
	`

	record, err := scanBonificacion(r.q.QueryRow(ctx, query, creatorID, month))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bonificación for creator %d month %s: %w",
			creatorID, month.Format("2006-01"), err)
	}

	return record, nil
}

// ListByMonth returns all records for a month ordered by diamonds descending,
// the order the dashboards show
func (r *BonificacionRepository) ListByMonth(ctx context.Context, month time.Time) ([]*models.BonificacionRecord, error) {
	query := `SELECT ` + bonificacionColumns + `
		FROM creator_bonificaciones
		WHERE mes_referencia = $1
		ORDER BY diamonds_live DESC, creator_id
	`

	rows, err := r.q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonificaciones for month %s: %w", month.Format("2006-01"), err)
	}
	defer rows.Close()

	var records []*models.BonificacionRecord
	for rows.Next() {
		record, err := scanBonificacion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonificación: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonificaciones: %w", err)
	}

	return records, nil
}

func scanBonificacion(row pgx.Row) (*models.BonificacionRecord, error) {
	var record models.BonificacionRecord
	var tierJSON []byte

	err := row.Scan(
		&record.CreatorID,
		&record.Month,
		&record.DaysLive,
		&record.HoursLive,
		&record.DiamondsLive,
		&record.DaysRemaining,
		&record.Hito12d40h,
		&record.Hito20d60h,
		&record.Hito22d80h,
		&record.Grad100k,
		&record.Grad300k,
		&record.Grad500k,
		&record.Grad1m,
		&record.ExtraDays,
		&record.BonusUSD,
		&record.TargetType,
		&record.TargetValue,
		&record.Priority300k,
		&record.NearTarget,
		&record.ReqDiamondsPerDay,
		&record.ReqHoursPerDay,
		&tierJSON,
		&record.CreatorMessage,
		&record.ManagerMessage,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tierJSON) > 0 {
		if err := json.Unmarshal(tierJSON, &record.TierStatuses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tier statuses: %w", err)
		}
	}

	return &record, nil
}
