package service

import (
	"context"
	"fmt"
	"time"

	"bonificador/events"
	"bonificador/models"

	log "github.com/sirupsen/logrus"
)

// batchService implements the BatchService interface
type batchService struct {
	creatorRepo  CreatorRepository
	snapshotRepo SnapshotRepository
	bonifRepo    BonificacionRepository
	runRepo      RecomputeRunRepository
	publisher    EventPublisher

	// now is swapped out in tests to make pacing deterministic
	now func() time.Time
}

// NewBatchService creates a new batch recomputation service
func NewBatchService(
	creatorRepo CreatorRepository,
	snapshotRepo SnapshotRepository,
	bonifRepo BonificacionRepository,
	runRepo RecomputeRunRepository,
	publisher EventPublisher,
) BatchService {
	return &batchService{
		creatorRepo:  creatorRepo,
		snapshotRepo: snapshotRepo,
		bonifRepo:    bonifRepo,
		runRepo:      runRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// RunCurrentMonth recomputes all active creators for the current month
func (s *batchService) RunCurrentMonth(ctx context.Context) (*models.BatchResult, error) {
	return s.RunForMonth(ctx, MonthOf(s.now().UTC()))
}

// RunForMonthKey parses and validates the month key before any per-creator
// work begins; a bad key produces a single validation error and no partial run
func (s *batchService) RunForMonthKey(ctx context.Context, monthKey string) (*models.BatchResult, error) {
	month, err := ParseMonthKey(monthKey)
	if err != nil {
		return nil, err
	}
	return s.RunForMonth(ctx, month)
}

// RunForMonth recomputes all active creators for the given month. Each
// creator's evaluation is independent: a snapshot-fetch failure degrades that
// creator to an all-zero aggregate, and a failed upsert is reported in the
// result without aborting the rest of the batch.
func (s *batchService) RunForMonth(ctx context.Context, month time.Time) (*models.BatchResult, error) {
	month = MonthOf(month)
	evalDate := ClampEvaluationDate(s.now().UTC(), month)
	first, last := MonthBounds(month)

	creators, err := s.creatorRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active creators: %w", err)
	}

	result := &models.BatchResult{
		Month:          month,
		EvaluationDate: evalDate,
		TotalCreators:  len(creators),
	}

	for _, creator := range creators {
		if err := ctx.Err(); err != nil {
			// Aborting between creators leaves already-written records
			// intact; each upsert is independent.
			return result, fmt.Errorf("batch aborted after %d creators: %w", result.TotalProcessed, err)
		}

		// Rows restricted to [first_day_of_month, day_after_last): the
		// repository contract is half-open on the upper bound.
		rows, err := s.snapshotRepo.GetForCreatorMonth(ctx, creator.ID, first, last.AddDate(0, 0, 1))
		if err != nil {
			log.WithFields(log.Fields{
				"creator_id": creator.ID,
				"month":      month.Format("2006-01"),
			}).Warnf("Failed to fetch snapshots, treating as zero activity: %v", err)
			rows = nil
		}

		eval := EvaluateCreator(creator, month, rows, evalDate)
		record := eval.Record()

		if err := s.bonifRepo.Upsert(ctx, record); err != nil {
			log.Errorf("Failed to upsert bonificación for creator %d: %v", creator.ID, err)
			result.Failures = append(result.Failures, models.CreatorFailure{
				CreatorID:   creator.ID,
				CreatorName: creator.Name,
				Err:         err.Error(),
			})
			continue
		}
		result.TotalProcessed++

		if s.publisher != nil && selectRule(eval).name == "target_reached" {
			s.publisher.Publish(ctx, events.TargetReachedEvent{
				CreatorID:    creator.ID,
				CreatorName:  creator.Name,
				Month:        month,
				DiamondsLive: eval.Aggregate.DiamondsLive,
			})
		}
	}

	s.recordRun(ctx, result)

	if s.publisher != nil {
		s.publisher.Publish(ctx, events.BatchCompletedEvent{
			Month:          month,
			TotalCreators:  result.TotalCreators,
			TotalProcessed: result.TotalProcessed,
			FailedCount:    len(result.Failures),
		})
	}

	log.WithFields(log.Fields{
		"month":           month.Format("2006-01"),
		"evaluation_date": evalDate.Format("2006-01-02"),
		"total_creators":  result.TotalCreators,
		"processed":       result.TotalProcessed,
		"failed":          len(result.Failures),
	}).Info("Completed bonificación batch run")

	return result, nil
}

// recordRun writes the audit record for this invocation. Audit failures are
// logged but never fail the batch; the computed records are already written.
func (s *batchService) recordRun(ctx context.Context, result *models.BatchResult) {
	if s.runRepo == nil {
		return
	}
	summary := map[string]interface{}{
		"evaluation_date": result.EvaluationDate.Format("2006-01-02"),
	}
	if len(result.Failures) > 0 {
		failed := make([]interface{}, 0, len(result.Failures))
		for _, f := range result.Failures {
			failed = append(failed, map[string]interface{}{
				"creator_id": f.CreatorID,
				"error":      f.Err,
			})
		}
		summary["failures"] = failed
	}

	run := &models.RecomputeRun{
		Month:             result.Month,
		RunDate:           s.now().UTC(),
		CreatorsProcessed: result.TotalProcessed,
		CreatorsFailed:    len(result.Failures),
		ExecutionSummary:  summary,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		log.Errorf("Failed to record recompute run: %v", err)
	}
}
