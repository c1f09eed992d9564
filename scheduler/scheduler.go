// Package scheduler triggers the daily bonificación recompute.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"bonificador/service"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// RecomputeScheduler runs the current-month batch once a day at a configured
// UTC hour. Reruns are safe: the batch is a pure function of its inputs and
// upserts by (creator, month).
type RecomputeScheduler struct {
	cronEngine *cron.Cron
	batch      service.BatchService
	hourUTC    int
}

// NewRecomputeScheduler creates a scheduler for the daily recompute
func NewRecomputeScheduler(batch service.BatchService, hourUTC int) *RecomputeScheduler {
	return &RecomputeScheduler{
		cronEngine: cron.New(cron.WithLocation(time.UTC)),
		batch:      batch,
		hourUTC:    hourUTC,
	}
}

// Start registers the daily job and starts the cron engine
func (s *RecomputeScheduler) Start() error {
	spec := fmt.Sprintf("0 %d * * *", s.hourUTC)
	_, err := s.cronEngine.AddFunc(spec, func() {
		log.Info("Daily recompute triggered")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		result, err := s.batch.RunCurrentMonth(ctx)
		if err != nil {
			log.Errorf("Daily recompute failed: %v", err)
			return
		}
		log.WithFields(log.Fields{
			"month":     result.Month.Format("2006-01"),
			"processed": result.TotalProcessed,
			"failed":    len(result.Failures),
		}).Info("Daily recompute finished")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule daily recompute: %w", err)
	}

	s.cronEngine.Start()
	log.Infof("Recompute scheduler started, daily run at %02d:00 UTC", s.hourUTC)
	return nil
}

// Stop stops the cron engine and waits for a running job to finish
func (s *RecomputeScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	log.Info("Recompute scheduler stopped")
}
