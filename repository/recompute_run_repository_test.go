package repository

import (
	"context"
	"testing"
	"time"

	"bonificador/models"
	"bonificador/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeRunRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRecomputeRunRepository(testDB.DB)
	ctx := context.Background()

	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no runs returns nil", func(t *testing.T) {
		got, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create and read back latest", func(t *testing.T) {
		older := &models.RecomputeRun{
			Month:             month,
			RunDate:           time.Date(2025, 6, 14, 7, 0, 0, 0, time.UTC),
			CreatorsProcessed: 40,
			CreatorsFailed:    0,
			ExecutionSummary:  map[string]interface{}{"evaluation_date": "2025-06-14"},
		}
		require.NoError(t, repo.Create(ctx, older))
		assert.NotZero(t, older.ID)

		newer := &models.RecomputeRun{
			Month:             month,
			RunDate:           time.Date(2025, 6, 15, 7, 0, 0, 0, time.UTC),
			CreatorsProcessed: 41,
			CreatorsFailed:    2,
			ExecutionSummary: map[string]interface{}{
				"evaluation_date": "2025-06-15",
				"failures": []interface{}{
					map[string]interface{}{"creator_id": float64(7), "error": "connection reset"},
				},
			},
		}
		require.NoError(t, repo.Create(ctx, newer))

		got, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 41, got.CreatorsProcessed)
		assert.Equal(t, 2, got.CreatorsFailed)
		assert.Equal(t, "2025-06-15", got.ExecutionSummary["evaluation_date"])
	})
}
