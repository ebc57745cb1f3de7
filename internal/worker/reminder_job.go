package worker

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/cache"
	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/repository"
	"github.com/spec-kit/event-marketplace/internal/service"
)

const reminderJobTimeout = 2 * time.Minute

// Notifier stores a rendered notification for a user.
type Notifier interface {
	Notify(ctx context.Context, userID string, msg service.Message) (*domain.Notification, error)
}

// ReminderScheduler periodically reminds customers of payment deadlines and upcoming events.
type ReminderScheduler struct {
	cron      *cron.Cron
	contracts repository.ContractRepository
	events    repository.EventRepository
	notifier  Notifier
	cache     *cache.Cache
	cfg       config.SchedulerConfig
	logger    *zap.Logger
	now       func() time.Time
}

// ReminderDependencies bundles collaborators for the scheduler.
type ReminderDependencies struct {
	ContractRepo repository.ContractRepository
	EventRepo    repository.EventRepository
	Notifier     Notifier
	Cache        *cache.Cache
	Config       config.SchedulerConfig
	Logger       *zap.Logger
	Clock        func() time.Time
}

// NewReminderScheduler builds the scheduler. Call Start to begin running jobs.
func NewReminderScheduler(deps ReminderDependencies) *ReminderScheduler {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderScheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		contracts: deps.ContractRepo,
		events:    deps.EventRepo,
		notifier:  deps.Notifier,
		cache:     deps.Cache,
		cfg:       deps.Config,
		logger:    logger,
		now:       clock,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.PaymentReminderSpec, s.job("payment_reminders", s.RunPaymentReminders)); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.EventReminderSpec, s.job("event_reminders", s.RunEventReminders)); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started",
		zap.String("payment_spec", s.cfg.PaymentReminderSpec),
		zap.String("event_spec", s.cfg.EventReminderSpec),
		zap.Duration("window", s.cfg.ReminderWindow()))
	return nil
}

// Stop halts the runner and waits for running jobs to finish.
func (s *ReminderScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ReminderScheduler) job(name string, run func(context.Context) (int, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		sent, err := run(ctx)
		if err != nil {
			s.logger.Error("reminder job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("reminder job finished", zap.String("job", name), zap.Int("sent", sent))
	}
}

// RunPaymentReminders notifies customers whose unpaid contracts fall due within the window.
// Each contract is reminded at most once per window.
func (s *ReminderScheduler) RunPaymentReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	window := s.cfg.ReminderWindow()
	contracts, err := s.contracts.ListDueUnpaid(ctx, now, now.Add(window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, c := range contracts {
		if !s.claim(ctx, cache.ReminderKey("payment", c.ID), window) {
			continue
		}
		_, err = s.notifier.Notify(ctx, c.UserID, service.Message{
			Kind:     domain.NotificationPaymentReminder,
			TitleKey: "notify_payment_reminder_title",
			BodyKey:  "notify_payment_reminder_body",
			Data: map[string]any{
				"Fee":      formatMoney(c.TotalFee),
				"Deadline": c.PaymentDeadline.UTC().Format("2006-01-02"),
			},
			Link: "/contracts/" + c.ID,
		})
		if err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// RunEventReminders notifies owners of events taking place within the window.
func (s *ReminderScheduler) RunEventReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	window := s.cfg.ReminderWindow()
	upcoming, err := s.events.ListStartingBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, e := range upcoming {
		if e.Status == domain.EventStatusCancelled {
			continue
		}
		if !s.claim(ctx, cache.ReminderKey("event", e.ID), window) {
			continue
		}
		_, err = s.notifier.Notify(ctx, e.UserID, service.Message{
			Kind:     domain.NotificationEventReminder,
			TitleKey: "notify_event_reminder_title",
			BodyKey:  "notify_event_reminder_body",
			Data: map[string]any{
				"Title": e.Title,
				"Date":  e.EventDate.UTC().Format("2006-01-02"),
			},
			Link: "/events/" + e.ID,
		})
		if err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// claim reserves a reminder for the window. When Redis is unreachable the reminder is
// sent anyway; a duplicate is preferred over a missed deadline.
func (s *ReminderScheduler) claim(ctx context.Context, key string, window time.Duration) bool {
	claimed, err := s.cache.Claim(ctx, key, window)
	if err != nil {
		s.logger.Warn("reminder dedupe unavailable, sending anyway", zap.String("key", key), zap.Error(err))
		return true
	}
	return claimed
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
