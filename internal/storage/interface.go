package storage

import (
	"errors"

	"github.com/mbalaz/dennyzen/internal/models"
)

// ErrNoDayState is returned by GetDayState when no entry exists for the
// requested date key. Callers treat it as a cache miss, not a failure.
var ErrNoDayState = errors.New("no day state for date")

// ErrInvalidDayState is returned by SaveDayState when the state violates the
// Current/Remaining invariant (leftover items with nothing displayed).
var ErrInvalidDayState = errors.New("day state has remaining items but no current item")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Day states, keyed by local calendar date (YYYY-MM-DD).
	// Writes are unconditional last-write-wins overwrites.
	GetDayState(day string) (models.DayState, error)
	SaveDayState(day string, state models.DayState) error

	// PruneBefore deletes all day states with keys strictly older than day
	// and reports how many were removed. History is never pruned.
	PruneBefore(day string) (int, error)

	// Markers. An unset marker reads as the empty string.
	GetLastVisit() (string, error)
	SetLastVisit(day string) error
	GetLastNotified() (string, error)
	SetLastNotified(day string) error

	// History archive of displayed items.
	AddHistoryEntry(models.HistoryEntry) error
	GetHistory(limit int) ([]models.HistoryEntry, error)

	// Utils
	GetConfigPath() string
}
