package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/config"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/mongodb"
	"github.com/Real-Lux/Farm-App-sub001/pkg/clients/notify"
)

// Scheduler runs the daily collection-reminder job: orders whose suggested
// collection date falls within the configured lookahead get a webhook
// notification so the farm can prepare the animals.
type Scheduler struct {
	cron     *cron.Cron
	repo     mongodb.Repository
	notifier notify.Client
	cfg      config.RemindersConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RemindersConfig, repository mongodb.Repository, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard 5-field cron. Jobs run in the
	// configured timezone so "7am" means local farm time.
	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:     cron.New(opts...),
		repo:     repository,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers and starts the reminder job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendCollectionReminders); err != nil {
		s.logger.Error("failed to schedule collection reminders", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendCollectionReminders() {
	if s.notifier == nil {
		s.logger.Debug("no notifier configured, skipping collection reminders")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	lookahead := s.cfg.LookaheadDays
	if lookahead < 1 {
		lookahead = 1
	}

	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, lookahead+1)

	records, err := s.repo.ListOrdersCollectingBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to load upcoming collections", zap.Error(err))
		return
	}

	s.logger.Info("collection reminder sweep", zap.Int("orders", len(records)))

	for _, record := range records {
		if record.SuggestedCollectionDate == nil {
			continue
		}

		event := notify.CollectionReminder{
			OrderID:        record.ID,
			Client:         record.Client,
			CollectionDate: record.SuggestedCollectionDate.Format("2006-01-02"),
		}
		if err := s.notifier.SendCollectionReminder(ctx, event); err != nil {
			s.logger.Error("failed to send collection reminder",
				zap.String("order_id", record.ID), zap.Error(err))
		}
	}
}
