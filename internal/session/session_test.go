package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbalaz/dennyzen/internal/models"
	"github.com/mbalaz/dennyzen/internal/provider"
	"github.com/mbalaz/dennyzen/internal/storage"
)

type fakeProvider struct {
	batch models.Batch
	err   error
	calls int
}

func (f *fakeProvider) FetchBatch(ctx context.Context) (models.Batch, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	}
}

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "dennyzen.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func testBatch() models.Batch {
	return models.Batch{
		{Motto: "A", Thought: "ta", Motivation: "ma"},
		{Motto: "B", Thought: "tb", Motivation: "mb"},
		{Motto: "C", Thought: "tc", Motivation: "mc"},
	}
}

func TestStart_FreshStateSplitsBatch(t *testing.T) {
	store := newTestStore(t)
	client := &fakeProvider{batch: testBatch()}
	sess := New(store, client, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if sess.State() != StateReady {
		t.Errorf("expected StateReady, got %v", sess.State())
	}

	current, ok := sess.Current()
	if !ok || current.Motto != "A" {
		t.Errorf("expected current to be first batch item, got %+v", current)
	}
	if sess.Remaining() != 2 {
		t.Errorf("expected 2 remaining, got %d", sess.Remaining())
	}

	// Split must be persisted
	state, err := store.GetDayState("2026-03-14")
	if err != nil {
		t.Fatalf("expected persisted day state: %v", err)
	}
	if state.Current == nil || state.Current.Motto != "A" {
		t.Errorf("persisted current = %+v, want motto A", state.Current)
	}
	if len(state.Remaining) != 2 || state.Remaining[0].Motto != "B" || state.Remaining[1].Motto != "C" {
		t.Errorf("persisted remaining = %+v, want [B C]", state.Remaining)
	}
}

func TestStart_MarksVisit(t *testing.T) {
	store := newTestStore(t)
	sess := New(store, &fakeProvider{batch: testBatch()}, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	visit, err := store.GetLastVisit()
	if err != nil {
		t.Fatalf("GetLastVisit failed: %v", err)
	}
	if visit != "2026-03-14" {
		t.Errorf("last visit = %q, want 2026-03-14", visit)
	}
}

func TestStart_CacheHitIssuesNoProviderCall(t *testing.T) {
	store := newTestStore(t)
	client := &fakeProvider{batch: testBatch()}
	sess := New(store, client, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 provider call after fresh start, got %d", client.calls)
	}

	// Second startup on the same date key is a pure cache read
	sess2 := New(store, client, WithClock(fixedClock()))
	if err := sess2.Start(context.Background()); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("expected no provider call on cache hit, got %d total", client.calls)
	}

	current, _ := sess.Current()
	current2, _ := sess2.Current()
	if current != current2 || sess.Remaining() != sess2.Remaining() {
		t.Errorf("restored state differs: %+v/%d vs %+v/%d", current, sess.Remaining(), current2, sess2.Remaining())
	}
}

func TestAdvance_MovesExactlyOneItem(t *testing.T) {
	store := newTestStore(t)
	sess := New(store, &fakeProvider{batch: testBatch()}, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	before := sess.Remaining()
	advanced, err := sess.Advance()
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if !advanced {
		t.Fatal("expected Advance to report true")
	}

	current, _ := sess.Current()
	if current.Motto != "B" {
		t.Errorf("current after advance = %q, want B", current.Motto)
	}
	if sess.Remaining() != before-1 {
		t.Errorf("remaining after advance = %d, want %d", sess.Remaining(), before-1)
	}
}

func TestAdvance_WalkthroughAndExhaustion(t *testing.T) {
	store := newTestStore(t)
	sess := New(store, &fakeProvider{batch: testBatch()}, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// A → B → C, then the queue is exhausted
	steps := []struct {
		motto     string
		remaining int
	}{
		{"B", 1},
		{"C", 0},
	}
	for _, step := range steps {
		if _, err := sess.Advance(); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
		current, _ := sess.Current()
		if current.Motto != step.motto || sess.Remaining() != step.remaining {
			t.Fatalf("got %q/%d, want %q/%d", current.Motto, sess.Remaining(), step.motto, step.remaining)
		}
	}

	if sess.CanAdvance() {
		t.Error("expected advance to be disabled on an empty queue")
	}

	// Advancing an empty queue is a no-op
	advanced, err := sess.Advance()
	if err != nil {
		t.Fatalf("Advance on empty queue failed: %v", err)
	}
	if advanced {
		t.Error("expected Advance to report false on an empty queue")
	}
	current, _ := sess.Current()
	if current.Motto != "C" || sess.Remaining() != 0 {
		t.Errorf("state changed by no-op advance: %q/%d", current.Motto, sess.Remaining())
	}
}

func TestStart_EmptyBatchWritesNoState(t *testing.T) {
	store := newTestStore(t)
	sess := New(store, &fakeProvider{err: provider.ErrEmptyResponse}, WithClock(fixedClock()))

	err := sess.Start(context.Background())
	if !errors.Is(err, provider.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	if sess.State() != StateFailed {
		t.Errorf("expected StateFailed, got %v", sess.State())
	}

	if _, err := store.GetDayState("2026-03-14"); !errors.Is(err, storage.ErrNoDayState) {
		t.Errorf("expected no day state written, got %v", err)
	}
}

func TestStart_RetryAfterFailure(t *testing.T) {
	store := newTestStore(t)
	client := &fakeProvider{err: provider.ErrUnavailable}
	sess := New(store, client, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err == nil {
		t.Fatal("expected first Start to fail")
	}

	// Retry re-enters the startup path with a healthy provider
	client.err = nil
	client.batch = testBatch()
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if sess.State() != StateReady {
		t.Errorf("expected StateReady after retry, got %v", sess.State())
	}
}

func TestRefresh_BypassesCache(t *testing.T) {
	store := newTestStore(t)
	client := &fakeProvider{batch: testBatch()}
	sess := New(store, client, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	client.batch = models.Batch{{Motto: "X", Thought: "tx", Motivation: "mx"}}
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("expected refresh to call the provider, got %d calls", client.calls)
	}

	current, _ := sess.Current()
	if current.Motto != "X" {
		t.Errorf("current after refresh = %q, want X", current.Motto)
	}
	if sess.Remaining() != 0 {
		t.Errorf("remaining after refresh = %d, want 0", sess.Remaining())
	}
}

func TestRecordsHistory(t *testing.T) {
	store := newTestStore(t)
	sess := New(store, &fakeProvider{batch: testBatch()}, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := sess.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	entries, err := store.GetHistory(0)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	// Most recent first
	if entries[0].Item.Motto != "B" || entries[1].Item.Motto != "A" {
		t.Errorf("history order = [%s %s], want [B A]", entries[0].Item.Motto, entries[1].Item.Motto)
	}
	for _, entry := range entries {
		if entry.ID == "" || entry.Day != "2026-03-14" {
			t.Errorf("malformed history entry: %+v", entry)
		}
	}
}

type visitFailStore struct {
	storage.Provider
}

func (s *visitFailStore) SetLastVisit(day string) error {
	return errors.New("marker write failed")
}

func TestStart_VisitMarkerFailureKeepsSessionReady(t *testing.T) {
	inner := newTestStore(t)
	item := models.Item{Motto: "A", Thought: "t", Motivation: "m"}
	if err := inner.SaveDayState("2026-03-14", models.DayState{Current: &item}); err != nil {
		t.Fatalf("SaveDayState failed: %v", err)
	}

	store := &visitFailStore{Provider: inner}
	client := &fakeProvider{}
	sess := New(store, client, WithClock(fixedClock()))

	if err := sess.Start(context.Background()); err != nil {
		t.Errorf("Start failed on a marker write for a usable day state: %v", err)
	}
	if sess.State() != StateReady {
		t.Errorf("expected StateReady, got %v", sess.State())
	}
	if current, ok := sess.Current(); !ok || current.Motto != "A" {
		t.Errorf("current = %+v, want the cached item", current)
	}
}
