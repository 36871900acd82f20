// Package scheduler runs the periodic jobs of the service on gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// DefaultReminderCron fires every day at 07:00.
const DefaultReminderCron = "0 7 * * *"

const (
	reminderTimeout = time.Minute
	reminderWindow  = 24 * time.Hour
)

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       zerolog.Logger
}

func New(log zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, log: log.With().Str("component", "scheduler").Logger()}, nil
}

// RegisterDailyReminder schedules the reminder job on a five-field cron expression.
func (s *Scheduler) RegisterDailyReminder(cronExpr string, bookings ports.BookingService) error {
	if cronExpr == "" {
		cronExpr = DefaultReminderCron
	}
	job := &ReminderJob{bookings: bookings, log: s.log}

	_, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
			defer cancel()
			job.Run(ctx, time.Now().UTC())
		}),
		gocron.WithName("daily-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register daily reminder: %w", err)
	}

	s.log.Info().Str("cron", cronExpr).Msg("registered daily reminder job")
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.log.Info().Int("jobs", len(s.scheduler.Jobs())).Msg("scheduler started")
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

// ReminderJob logs the bookings starting within the next day. Delivery of
// the reminders (mail, SMS) is not wired.
type ReminderJob struct {
	bookings ports.BookingService
	log      zerolog.Logger
}

func NewReminderJob(bookings ports.BookingService, log zerolog.Logger) *ReminderJob {
	return &ReminderJob{bookings: bookings, log: log}
}

// Run returns the number of upcoming confirmed bookings it found.
func (j *ReminderJob) Run(ctx context.Context, now time.Time) int64 {
	j.log.Info().Msg("running daily reminder job")

	page, err := j.bookings.Search(ctx, ports.BookingFilter{
		Status: domain.BookingConfirmed,
		From:   now,
		To:     now.Add(reminderWindow),
		Page:   1,
		Limit:  1,
	})
	if err != nil {
		j.log.Error().Err(err).Msg("daily reminder: booking lookup failed")
		return 0
	}

	j.log.Info().Int64("upcoming_bookings", page.Total).Msg("daily reminder: bookings due within 24h")
	return page.Total
}
