package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bonificador/events"
	"bonificador/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBatchService(
	creatorRepo *MockCreatorRepository,
	snapshotRepo *MockSnapshotRepository,
	bonifRepo *MockBonificacionRepository,
	runRepo *MockRecomputeRunRepository,
	publisher *MockEventPublisher,
	now time.Time,
) *batchService {
	s := NewBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher).(*batchService)
	s.now = func() time.Time { return now }
	return s
}

func TestBatchService_RunForMonth(t *testing.T) {
	ctx := context.Background()
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	creators := []*models.Creator{
		{ID: 1, Name: "ana", JoinedAt: joined, Active: true},
		{ID: 2, Name: "bruno", JoinedAt: joined, Active: true},
	}

	t.Run("processes every active creator and records the run", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		snapshotRepo := new(MockSnapshotRepository)
		bonifRepo := new(MockBonificacionRepository)
		runRepo := new(MockRecomputeRunRepository)
		publisher := new(MockEventPublisher)

		creatorRepo.On("GetActive", ctx).Return(creators, nil)
		snapshotRepo.On("GetForCreatorMonth", ctx, int64(1), mock.Anything, mock.Anything).
			Return([]*models.DailySnapshotRow{snap(1, 10, 150_000, 40)}, nil)
		snapshotRepo.On("GetForCreatorMonth", ctx, int64(2), mock.Anything, mock.Anything).
			Return([]*models.DailySnapshotRow{snap(2, 10, 80_000, 30)}, nil)
		bonifRepo.On("Upsert", ctx, mock.AnythingOfType("*models.BonificacionRecord")).Return(nil)
		runRepo.On("Create", ctx, mock.AnythingOfType("*models.RecomputeRun")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return()

		s := newTestBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher, now)
		result, err := s.RunForMonth(ctx, june)

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCreators)
		assert.Equal(t, 2, result.TotalProcessed)
		assert.Empty(t, result.Failures)
		assert.Equal(t, june, result.Month)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), result.EvaluationDate)

		bonifRepo.AssertNumberOfCalls(t, "Upsert", 2)
		runRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(run *models.RecomputeRun) bool {
			return run.CreatorsProcessed == 2 && run.CreatorsFailed == 0
		}))
	})

	t.Run("upsert failure skips the creator but the batch continues", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		snapshotRepo := new(MockSnapshotRepository)
		bonifRepo := new(MockBonificacionRepository)
		runRepo := new(MockRecomputeRunRepository)
		publisher := new(MockEventPublisher)

		creatorRepo.On("GetActive", ctx).Return(creators, nil)
		snapshotRepo.On("GetForCreatorMonth", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return([]*models.DailySnapshotRow{}, nil)
		bonifRepo.On("Upsert", ctx, mock.MatchedBy(func(r *models.BonificacionRecord) bool {
			return r.CreatorID == 1
		})).Return(errors.New("connection reset"))
		bonifRepo.On("Upsert", ctx, mock.MatchedBy(func(r *models.BonificacionRecord) bool {
			return r.CreatorID == 2
		})).Return(nil)
		runRepo.On("Create", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return()

		s := newTestBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher, now)
		result, err := s.RunForMonth(ctx, june)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalProcessed)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, int64(1), result.Failures[0].CreatorID)
		assert.Equal(t, "ana", result.Failures[0].CreatorName)
		assert.Contains(t, result.Failures[0].Err, "connection reset")
	})

	t.Run("snapshot fetch failure degrades to a zero aggregate", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		snapshotRepo := new(MockSnapshotRepository)
		bonifRepo := new(MockBonificacionRepository)
		runRepo := new(MockRecomputeRunRepository)
		publisher := new(MockEventPublisher)

		creatorRepo.On("GetActive", ctx).Return(creators[:1], nil)
		snapshotRepo.On("GetForCreatorMonth", ctx, int64(1), mock.Anything, mock.Anything).
			Return(nil, errors.New("timeout"))
		bonifRepo.On("Upsert", ctx, mock.MatchedBy(func(r *models.BonificacionRecord) bool {
			return r.DaysLive == 0 && r.DiamondsLive == 0 && r.HoursLive == 0
		})).Return(nil)
		runRepo.On("Create", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return()

		s := newTestBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher, now)
		result, err := s.RunForMonth(ctx, june)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalProcessed)
		assert.Empty(t, result.Failures)
	})

	t.Run("creator listing failure aborts before any work", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		snapshotRepo := new(MockSnapshotRepository)
		bonifRepo := new(MockBonificacionRepository)
		runRepo := new(MockRecomputeRunRepository)
		publisher := new(MockEventPublisher)

		creatorRepo.On("GetActive", ctx).Return(nil, errors.New("database down"))

		s := newTestBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher, now)
		_, err := s.RunForMonth(ctx, june)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get active creators")
		bonifRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("target reached publishes an event", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		snapshotRepo := new(MockSnapshotRepository)
		bonifRepo := new(MockBonificacionRepository)
		runRepo := new(MockRecomputeRunRepository)
		publisher := new(MockEventPublisher)

		creatorRepo.On("GetActive", ctx).Return(creators[:1], nil)
		snapshotRepo.On("GetForCreatorMonth", ctx, int64(1), mock.Anything, mock.Anything).
			Return([]*models.DailySnapshotRow{snap(1, 12, 1_200_000, 90)}, nil)
		bonifRepo.On("Upsert", ctx, mock.Anything).Return(nil)
		runRepo.On("Create", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return()

		s := newTestBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher, now)
		_, err := s.RunForMonth(ctx, june)
		require.NoError(t, err)

		publisher.AssertCalled(t, "Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
			reached, ok := e.(events.TargetReachedEvent)
			return ok && reached.CreatorID == 1 && reached.DiamondsLive == 1_200_000
		}))
	})

	t.Run("audit failure never fails the batch", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		snapshotRepo := new(MockSnapshotRepository)
		bonifRepo := new(MockBonificacionRepository)
		runRepo := new(MockRecomputeRunRepository)
		publisher := new(MockEventPublisher)

		creatorRepo.On("GetActive", ctx).Return(creators[:1], nil)
		snapshotRepo.On("GetForCreatorMonth", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return([]*models.DailySnapshotRow{}, nil)
		bonifRepo.On("Upsert", ctx, mock.Anything).Return(nil)
		runRepo.On("Create", ctx, mock.Anything).Return(errors.New("audit table missing"))
		publisher.On("Publish", ctx, mock.Anything).Return()

		s := newTestBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, publisher, now)
		result, err := s.RunForMonth(ctx, june)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalProcessed)
	})
}

func TestBatchService_RunForMonthKey(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	t.Run("invalid key fails before touching the repositories", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)

		s := newTestBatchService(creatorRepo, new(MockSnapshotRepository), new(MockBonificacionRepository), new(MockRecomputeRunRepository), new(MockEventPublisher), now)
		_, err := s.RunForMonthKey(ctx, "2025-06-15")

		require.Error(t, err)
		creatorRepo.AssertNotCalled(t, "GetActive", mock.Anything)
	})

	t.Run("past month evaluates on its last day", func(t *testing.T) {
		creatorRepo := new(MockCreatorRepository)
		creatorRepo.On("GetActive", ctx).Return([]*models.Creator{}, nil)
		runRepo := new(MockRecomputeRunRepository)
		runRepo.On("Create", ctx, mock.Anything).Return(nil)
		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, mock.Anything).Return()

		s := newTestBatchService(creatorRepo, new(MockSnapshotRepository), new(MockBonificacionRepository), runRepo, publisher, now)
		result, err := s.RunForMonthKey(ctx, "2025-06")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), result.EvaluationDate)
	})
}
