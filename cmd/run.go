package cmd

import (
	"context"
	"fmt"
	"time"

	"bonificador/config"
	"bonificador/database"
	"bonificador/events"
	"bonificador/messaging"
	"bonificador/models"
	"bonificador/repository"
	"bonificador/scheduler"
	"bonificador/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the long-running service: a daily scheduler that
// recomputes the current month's bonificaciones for every active creator.
func Run(ctx context.Context) error {
	cfg := config.Get()
	configureLogging(cfg)

	log.Info("Starting bonificador service...")

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	creatorRepo := repository.NewCreatorRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	bonifRepo := repository.NewBonificacionRepository(db)
	runRepo := repository.NewRecomputeRunRepository(db)

	eventBus := events.NewBus()
	subscribeTargetReached(eventBus, creatorRepo, bonifRepo, cfg.DefaultCountry)

	batch := service.NewBatchService(creatorRepo, snapshotRepo, bonifRepo, runRepo, eventBus)

	sched := scheduler.NewRecomputeScheduler(batch, cfg.RecomputeHourUTC)
	if err := sched.Start(); err != nil {
		db.Close()
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	// Run once at startup so a fresh deployment has current numbers instead
	// of waiting for the next scheduled tick.
	if _, err := batch.RunCurrentMonth(ctx); err != nil {
		log.Errorf("Initial recompute failed: %v", err)
	}

	log.Infof("Service is running in %s mode", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down...")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// Recompute runs a single batch for the given month key and exits. An empty
// key means the current month.
func Recompute(ctx context.Context, monthKey string) error {
	cfg := config.Get()
	configureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	batch := service.NewBatchService(
		repository.NewCreatorRepository(db),
		repository.NewSnapshotRepository(db),
		repository.NewBonificacionRepository(db),
		repository.NewRecomputeRunRepository(db),
		events.NewBus(),
	)

	var result *models.BatchResult
	if monthKey == "" {
		result, err = batch.RunCurrentMonth(ctx)
	} else {
		result, err = batch.RunForMonthKey(ctx, monthKey)
	}
	if err != nil {
		return err
	}

	if len(result.Failures) > 0 {
		return fmt.Errorf("recompute finished with %d of %d creators failed", len(result.Failures), result.TotalCreators)
	}
	return nil
}

// subscribeTargetReached logs each graduation with a ready-to-send WhatsApp
// link carrying the creator's congratulation message, so managers can deliver
// it in one click.
func subscribeTargetReached(bus *events.Bus, creatorRepo *repository.CreatorRepository, bonifRepo *repository.BonificacionRepository, defaultCountry string) {
	bus.Subscribe(events.EventTypeTargetReached, func(ctx context.Context, event events.Event) {
		reached, ok := event.(events.TargetReachedEvent)
		if !ok {
			return
		}

		fields := log.Fields{
			"creator_id": reached.CreatorID,
			"creator":    reached.CreatorName,
			"month":      reached.Month.Format("2006-01"),
			"diamonds":   reached.DiamondsLive,
		}

		link, err := waLinkFor(ctx, creatorRepo, bonifRepo, reached, defaultCountry)
		if err != nil {
			log.WithFields(fields).Warnf("Creator reached target but no WhatsApp link: %v", err)
			return
		}
		fields["wa_link"] = link
		log.WithFields(fields).Info("Creator reached graduation target")
	})
}

func waLinkFor(ctx context.Context, creatorRepo *repository.CreatorRepository, bonifRepo *repository.BonificacionRepository, reached events.TargetReachedEvent, defaultCountry string) (string, error) {
	creator, err := creatorRepo.GetByID(ctx, reached.CreatorID)
	if err != nil {
		return "", err
	}
	if creator == nil {
		return "", fmt.Errorf("creator %d not found", reached.CreatorID)
	}

	phone, err := messaging.NormalizePhoneE164(creator.Phone, defaultCountry)
	if err != nil {
		return "", err
	}

	record, err := bonifRepo.GetByCreatorMonth(ctx, reached.CreatorID, reached.Month)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", fmt.Errorf("no bonificación record for creator %d", reached.CreatorID)
	}

	return messaging.Link(phone, record.CreatorMessage), nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}
