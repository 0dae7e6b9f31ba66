package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/logger"
	"github.com/mbalaz/dennyzen/internal/storage"
)

// Notifier delivers one local notification.
type Notifier interface {
	Send(title, body string) error
}

// Scheduler fires at most one reminder per calendar day: only at or after the
// configured hour, only when the user has not visited today, and only when no
// reminder went out today. A visit resets eligibility for the next day only.
type Scheduler struct {
	store    storage.Provider
	notifier Notifier
	now      func() time.Time
	interval time.Duration
	hour     int
}

type Option func(*Scheduler)

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithInterval overrides the re-arm interval between checks.
func WithInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = interval
	}
}

// WithHour overrides the earliest local clock hour a reminder may fire.
func WithHour(hour int) Option {
	return func(s *Scheduler) {
		s.hour = hour
	}
}

func New(store storage.Provider, notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		interval: constants.NotifyInterval,
		hour:     constants.NotifyHour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run checks immediately, then re-arms a timer after each evaluation until
// the context is cancelled. A failed check is logged and does not stop the
// loop.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		fired, err := s.Check()
		if err != nil {
			logger.Error("Reminder check failed", "error", err)
		} else if fired {
			logger.Info("Reminder sent", "day", s.today())
		}

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Check evaluates the reminder conditions once and fires when they all hold.
// It reports whether a notification went out.
func (s *Scheduler) Check() (bool, error) {
	now := s.now()
	if now.Hour() < s.hour {
		return false, nil
	}

	today := now.Format(constants.DateFormat)

	lastVisit, err := s.store.GetLastVisit()
	if err != nil {
		return false, fmt.Errorf("failed to read visit marker: %w", err)
	}
	if lastVisit == today {
		return false, nil
	}

	lastNotified, err := s.store.GetLastNotified()
	if err != nil {
		return false, fmt.Errorf("failed to read notification marker: %w", err)
	}
	if lastNotified == today {
		return false, nil
	}

	if err := s.notifier.Send(constants.NotifyTitle, constants.NotifyBody); err != nil {
		return false, fmt.Errorf("failed to send notification: %w", err)
	}

	// Record the send before anything else can re-trigger it today.
	if err := s.store.SetLastNotified(today); err != nil {
		return true, fmt.Errorf("notification sent but marker not recorded: %w", err)
	}

	return true, nil
}

func (s *Scheduler) today() string {
	return s.now().Format(constants.DateFormat)
}
