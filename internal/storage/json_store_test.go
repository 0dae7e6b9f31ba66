package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mbalaz/dennyzen/internal/models"
)

func newJSONTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "dennyzen.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dennyzen.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("expected second Init to fail")
	}
}

func TestJSONStore_LoadWithoutInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected Load of missing storage to fail")
	}
}

func TestJSONStore_DayStateRoundTrip(t *testing.T) {
	store := newJSONTestStore(t)

	current := models.Item{Motto: "A", Thought: "ta", Motivation: "ma"}
	state := models.DayState{
		Current:   &current,
		Remaining: []models.Item{{Motto: "B", Thought: "tb", Motivation: "mb"}},
	}

	if err := store.SaveDayState("2026-03-14", state); err != nil {
		t.Fatalf("SaveDayState failed: %v", err)
	}

	// Reload from disk to check persistence, not just the in-memory map
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := reloaded.GetDayState("2026-03-14")
	if err != nil {
		t.Fatalf("GetDayState failed: %v", err)
	}
	if got.Current == nil || *got.Current != current {
		t.Errorf("current = %+v, want %+v", got.Current, current)
	}
	if len(got.Remaining) != 1 || got.Remaining[0].Motto != "B" {
		t.Errorf("remaining = %+v, want [B]", got.Remaining)
	}
}

func TestJSONStore_MissingDayState(t *testing.T) {
	store := newJSONTestStore(t)

	_, err := store.GetDayState("2026-03-14")
	if !errors.Is(err, ErrNoDayState) {
		t.Errorf("expected ErrNoDayState, got %v", err)
	}
}

func TestJSONStore_RejectsInvalidDayState(t *testing.T) {
	store := newJSONTestStore(t)

	invalid := models.DayState{
		Remaining: []models.Item{{Motto: "B", Thought: "tb", Motivation: "mb"}},
	}
	if err := store.SaveDayState("2026-03-14", invalid); !errors.Is(err, ErrInvalidDayState) {
		t.Errorf("expected ErrInvalidDayState, got %v", err)
	}
}

func TestJSONStore_OverwriteIsLastWriteWins(t *testing.T) {
	store := newJSONTestStore(t)

	first := models.Item{Motto: "A", Thought: "t", Motivation: "m"}
	second := models.Item{Motto: "X", Thought: "t", Motivation: "m"}

	if err := store.SaveDayState("2026-03-14", models.DayState{Current: &first}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveDayState("2026-03-14", models.DayState{Current: &second}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := store.GetDayState("2026-03-14")
	if err != nil {
		t.Fatalf("GetDayState failed: %v", err)
	}
	if got.Current.Motto != "X" {
		t.Errorf("current = %q, want the overwriting value X", got.Current.Motto)
	}
}

func TestJSONStore_Markers(t *testing.T) {
	store := newJSONTestStore(t)

	// Unset markers read as empty
	visit, err := store.GetLastVisit()
	if err != nil || visit != "" {
		t.Errorf("unset visit marker = %q/%v, want empty", visit, err)
	}

	if err := store.SetLastVisit("2026-03-14"); err != nil {
		t.Fatalf("SetLastVisit failed: %v", err)
	}
	if err := store.SetLastNotified("2026-03-13"); err != nil {
		t.Fatalf("SetLastNotified failed: %v", err)
	}

	visit, _ = store.GetLastVisit()
	notified, _ := store.GetLastNotified()
	if visit != "2026-03-14" || notified != "2026-03-13" {
		t.Errorf("markers = %q/%q, want 2026-03-14/2026-03-13", visit, notified)
	}
}

func TestJSONStore_PruneBefore(t *testing.T) {
	store := newJSONTestStore(t)

	item := models.Item{Motto: "A", Thought: "t", Motivation: "m"}
	for _, day := range []string{"2026-03-10", "2026-03-11", "2026-03-14"} {
		if err := store.SaveDayState(day, models.DayState{Current: &item}); err != nil {
			t.Fatalf("SaveDayState(%s) failed: %v", day, err)
		}
	}

	removed, err := store.PruneBefore("2026-03-12")
	if err != nil {
		t.Fatalf("PruneBefore failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if _, err := store.GetDayState("2026-03-10"); !errors.Is(err, ErrNoDayState) {
		t.Error("expected 2026-03-10 to be pruned")
	}
	if _, err := store.GetDayState("2026-03-14"); err != nil {
		t.Errorf("expected 2026-03-14 to survive: %v", err)
	}
}

func TestJSONStore_ConcurrentHandlesDoNotLoseWrites(t *testing.T) {
	store := newJSONTestStore(t)
	path := store.GetConfigPath()

	// A long-lived handle (a reminder watcher) loads its snapshot first.
	watcher := NewJSONStore(path)
	if err := watcher.Load(); err != nil {
		t.Fatalf("watcher Load failed: %v", err)
	}

	// A second handle persists today's batch afterwards.
	session := NewJSONStore(path)
	if err := session.Load(); err != nil {
		t.Fatalf("session Load failed: %v", err)
	}
	item := models.Item{Motto: "A", Thought: "t", Motivation: "m"}
	if err := session.SaveDayState("2026-03-14", models.DayState{Current: &item}); err != nil {
		t.Fatalf("SaveDayState failed: %v", err)
	}

	// The watcher's marker write must not wipe the batch from disk.
	if err := watcher.SetLastNotified("2026-03-14"); err != nil {
		t.Fatalf("SetLastNotified failed: %v", err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, err := reloaded.GetDayState("2026-03-14"); err != nil {
		t.Errorf("day state lost after concurrent marker write: %v", err)
	}
	notified, _ := reloaded.GetLastNotified()
	if notified != "2026-03-14" {
		t.Errorf("notification marker = %q, want 2026-03-14", notified)
	}
}

func TestJSONStore_HistoryOrder(t *testing.T) {
	store := newJSONTestStore(t)

	entries := []models.HistoryEntry{
		{ID: "1", Day: "2026-03-13", Item: models.Item{Motto: "old"}},
		{ID: "2", Day: "2026-03-14", Item: models.Item{Motto: "new"}},
	}
	for _, entry := range entries {
		if err := store.AddHistoryEntry(entry); err != nil {
			t.Fatalf("AddHistoryEntry failed: %v", err)
		}
	}

	got, err := store.GetHistory(0)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("history = %+v, want most recent first", got)
	}

	limited, err := store.GetHistory(1)
	if err != nil {
		t.Fatalf("GetHistory(1) failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "2" {
		t.Errorf("limited history = %+v, want only the newest entry", limited)
	}
}
