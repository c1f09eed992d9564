package repository

import (
	"context"
	"fmt"

	"bonificador/database"
	"bonificador/models"

	"github.com/jackc/pgx/v5"
)

// CreatorRepository implements the CreatorRepository interface
type CreatorRepository struct {
	q queryable
}

// NewCreatorRepository creates a new creator repository
func NewCreatorRepository(db *database.DB) *CreatorRepository {
	return &CreatorRepository{q: db.Pool}
}

// GetByID retrieves a creator by ID
func (r *CreatorRepository) GetByID(ctx context.Context, id int64) (*models.Creator, error) {
	query := `
		SELECT id, name, tiktok_username, phone, joined_at, active, created_at, updated_at
		FROM creators
		WHERE id = $1
	`

	var creator models.Creator
	err := r.q.QueryRow(ctx, query, id).Scan(
		&creator.ID,
		&creator.Name,
		&creator.TikTokUsername,
		&creator.Phone,
		&creator.JoinedAt,
		&creator.Active,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator %d: %w", id, err)
	}

	return &creator, nil
}

// GetActive returns all active creators ordered by ID so batch runs iterate
// deterministically
func (r *CreatorRepository) GetActive(ctx context.Context) ([]*models.Creator, error) {
	query := `
		SELECT id, name, tiktok_username, phone, joined_at, active, created_at, updated_at
		FROM creators
		WHERE active = TRUE
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active creators: %w", err)
	}
	defer rows.Close()

	var creators []*models.Creator
	for rows.Next() {
		var creator models.Creator
		err := rows.Scan(
			&creator.ID,
			&creator.Name,
			&creator.TikTokUsername,
			&creator.Phone,
			&creator.JoinedAt,
			&creator.Active,
			&creator.CreatedAt,
			&creator.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, &creator)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creators: %w", err)
	}

	return creators, nil
}

// Create inserts a creator. Used by tests and the identity collaborator's
// seeding scripts; the engine itself never creates creators.
func (r *CreatorRepository) Create(ctx context.Context, creator *models.Creator) error {
	query := `
		INSERT INTO creators (name, tiktok_username, phone, joined_at, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		creator.Name,
		creator.TikTokUsername,
		creator.Phone,
		creator.JoinedAt,
		creator.Active,
	).Scan(&creator.ID, &creator.CreatedAt, &creator.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create creator %q: %w", creator.Name, err)
	}

	return nil
}
