package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mbalaz/dennyzen/internal/models"
)

type Store struct {
	Version      int                        `json:"version"`
	LastVisit    string                     `json:"last_visit_date,omitempty"`
	LastNotified string                     `json:"last_notified_date,omitempty"`
	Days         map[string]models.DayState `json:"days"`
	History      []models.HistoryEntry      `json:"history"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Days:    make(map[string]models.DayState),
		History: []models.HistoryEntry{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'dennyzen init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Days == nil {
		s.store.Days = make(map[string]models.DayState)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// refresh re-reads the file so a write folds in changes made through other
// handles since Load. Without it a long-lived handle's snapshot would wipe
// everything written concurrently when save rewrites the whole file. A
// missing file keeps the in-memory snapshot (Init saves before one exists).
func (s *JSONStore) refresh() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Days == nil {
		store.Days = make(map[string]models.DayState)
	}

	s.store = store
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetDayState(day string) (models.DayState, error) {
	if s.store == nil {
		return models.DayState{}, fmt.Errorf("storage not loaded")
	}

	state, ok := s.store.Days[day]
	if !ok {
		return models.DayState{}, fmt.Errorf("%w: %s", ErrNoDayState, day)
	}

	return state, nil
}

func (s *JSONStore) SaveDayState(day string, state models.DayState) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !state.Valid() {
		return ErrInvalidDayState
	}
	if err := s.refresh(); err != nil {
		return err
	}

	s.store.Days[day] = state
	return s.save()
}

func (s *JSONStore) PruneBefore(day string) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}
	if err := s.refresh(); err != nil {
		return 0, err
	}

	// Date keys are YYYY-MM-DD, so lexicographic order is chronological order.
	removed := 0
	for key := range s.store.Days {
		if key < day {
			delete(s.store.Days, key)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, s.save()
}

func (s *JSONStore) GetLastVisit() (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.LastVisit, nil
}

func (s *JSONStore) SetLastVisit(day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := s.refresh(); err != nil {
		return err
	}
	s.store.LastVisit = day
	return s.save()
}

func (s *JSONStore) GetLastNotified() (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.LastNotified, nil
}

func (s *JSONStore) SetLastNotified(day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := s.refresh(); err != nil {
		return err
	}
	s.store.LastNotified = day
	return s.save()
}

func (s *JSONStore) AddHistoryEntry(entry models.HistoryEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := s.refresh(); err != nil {
		return err
	}
	s.store.History = append(s.store.History, entry)
	return s.save()
}

func (s *JSONStore) GetHistory(limit int) ([]models.HistoryEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	entries := s.store.History
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	// Most recent first
	out := make([]models.HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}

	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
