package service

import (
	"context"
	"time"

	"bonificador/events"
	"bonificador/models"

	"github.com/stretchr/testify/mock"
)

// MockCreatorRepository is a mock implementation of CreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) GetByID(ctx context.Context, id int64) (*models.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetActive(ctx context.Context) ([]*models.Creator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Creator), args.Error(1)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) GetForCreatorMonth(ctx context.Context, creatorID int64, from, to time.Time) ([]*models.DailySnapshotRow, error) {
	args := m.Called(ctx, creatorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailySnapshotRow), args.Error(1)
}

// MockBonificacionRepository is a mock implementation of BonificacionRepository
type MockBonificacionRepository struct {
	mock.Mock
}

func (m *MockBonificacionRepository) Upsert(ctx context.Context, record *models.BonificacionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBonificacionRepository) GetByCreatorMonth(ctx context.Context, creatorID int64, month time.Time) (*models.BonificacionRecord, error) {
	args := m.Called(ctx, creatorID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BonificacionRecord), args.Error(1)
}

func (m *MockBonificacionRepository) ListByMonth(ctx context.Context, month time.Time) ([]*models.BonificacionRecord, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BonificacionRecord), args.Error(1)
}

// MockRecomputeRunRepository is a mock implementation of RecomputeRunRepository
type MockRecomputeRunRepository struct {
	mock.Mock
}

func (m *MockRecomputeRunRepository) Create(ctx context.Context, run *models.RecomputeRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRecomputeRunRepository) GetLatest(ctx context.Context) (*models.RecomputeRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecomputeRun), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
