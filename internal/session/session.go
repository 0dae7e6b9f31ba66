package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/logger"
	"github.com/mbalaz/dennyzen/internal/models"
	"github.com/mbalaz/dennyzen/internal/provider"
	"github.com/mbalaz/dennyzen/internal/storage"
)

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// Controller drives one day's inspiration session: restore from the day
// store when today's entry exists, fetch one batch when it does not, and
// advance through the remaining queue on demand. All methods run on the
// caller's goroutine; the controller is single-session by design.
type Controller struct {
	store  storage.Provider
	client provider.Client
	now    func() time.Time

	state     State
	current   *models.Item
	remaining []models.Item
	lastErr   error
}

type Option func(*Controller)

// WithClock overrides the wall clock, used by tests to pin the date key.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func New(store storage.Provider, client provider.Client, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		client: client,
		now:    time.Now,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today returns the current date key in the viewer's local calendar.
func (c *Controller) Today() string {
	return c.now().Format(constants.DateFormat)
}

// Start runs the startup path: a cache hit for today restores state without
// touching the provider, a miss fetches exactly one batch. Re-entering Start
// after a failure is the retry path.
func (c *Controller) Start(ctx context.Context) error {
	c.state = StateLoading
	c.lastErr = nil
	today := c.Today()

	state, err := c.store.GetDayState(today)
	switch {
	case err == nil && state.Current != nil:
		c.current = state.Current
		c.remaining = state.Remaining
		c.state = StateReady
		logger.Debug("Restored day state from cache", "day", today, "remaining", len(c.remaining))
		c.markVisit(today)
		return nil
	case err == nil || errors.Is(err, storage.ErrNoDayState):
		return c.fetchAndStore(ctx, today)
	default:
		return c.fail(err)
	}
}

// Refresh bypasses the per-day cache: it fetches a fresh batch and overwrites
// today's state even when a cached entry exists.
func (c *Controller) Refresh(ctx context.Context) error {
	c.state = StateLoading
	c.lastErr = nil
	return c.fetchAndStore(ctx, c.Today())
}

func (c *Controller) fetchAndStore(ctx context.Context, today string) error {
	batch, err := c.client.FetchBatch(ctx)
	if err != nil {
		return c.fail(err)
	}
	if len(batch) == 0 {
		// The provider client already rejects empty batches; guard anyway so
		// no invalid split is ever persisted.
		return c.fail(provider.ErrEmptyResponse)
	}

	head := batch[0]
	tail := append([]models.Item(nil), batch[1:]...)

	if err := c.store.SaveDayState(today, models.DayState{Current: &head, Remaining: tail}); err != nil {
		return c.fail(err)
	}

	c.current = &head
	c.remaining = tail
	c.state = StateReady
	c.recordHistory(today, head)
	logger.Info("Fetched new inspiration batch", "day", today, "items", len(batch))
	c.markVisit(today)

	return nil
}

// Advance pops the head of the remaining queue into the displayed slot and
// persists the new split. With an empty queue it is a no-op and returns
// false.
func (c *Controller) Advance() (bool, error) {
	if c.state != StateReady || len(c.remaining) == 0 {
		return false, nil
	}

	today := c.Today()
	head := c.remaining[0]
	tail := append([]models.Item(nil), c.remaining[1:]...)

	if err := c.store.SaveDayState(today, models.DayState{Current: &head, Remaining: tail}); err != nil {
		return false, c.fail(err)
	}

	c.current = &head
	c.remaining = tail
	c.recordHistory(today, head)

	return true, nil
}

func (c *Controller) fail(err error) error {
	c.lastErr = err
	c.state = StateFailed
	logger.Error("Session failed", "error", err)
	return err
}

// markVisit is best-effort like recordHistory: a marker write failure must
// not fail a session that already holds today's items.
func (c *Controller) markVisit(today string) {
	if err := c.store.SetLastVisit(today); err != nil {
		logger.Warn("Failed to record visit marker", "error", err)
	}
}

// recordHistory archives a displayed item. The archive is best-effort; a
// failed insert never blocks the session.
func (c *Controller) recordHistory(today string, item models.Item) {
	entry := models.HistoryEntry{
		ID:   uuid.NewString(),
		Day:  today,
		Item: item,
	}
	if err := c.store.AddHistoryEntry(entry); err != nil {
		logger.Warn("Failed to record history entry", "error", err)
	}
}

func (c *Controller) State() State {
	return c.state
}

// Current returns the displayed item, if any.
func (c *Controller) Current() (models.Item, bool) {
	if c.current == nil {
		return models.Item{}, false
	}
	return *c.current, true
}

// Remaining reports how many items are still queued for today.
func (c *Controller) Remaining() int {
	return len(c.remaining)
}

// CanAdvance reports whether the advance action is available.
func (c *Controller) CanAdvance() bool {
	return c.state == StateReady && len(c.remaining) > 0
}

func (c *Controller) Err() error {
	return c.lastErr
}
