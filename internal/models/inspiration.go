package models

// Item is a single generated inspiration. Immutable once received; only the
// provider client produces these.
type Item struct {
	Motto      string `json:"motto"`
	Thought    string `json:"thought"`
	Motivation string `json:"motivation"`
}

// Batch is the ordered result of one provider call. Order is significant: the
// head becomes the displayed item, the tail becomes the day's queue.
type Batch []Item

// DayState is the per-date split of a batch into the displayed item and the
// not-yet-shown backlog.
//
// Invariant: if Current is nil, Remaining must be empty. A day never has
// leftover items with nothing displayed.
type DayState struct {
	Current   *Item  `json:"current,omitempty"`
	Remaining []Item `json:"remaining"`
}

// Valid reports whether the state satisfies the Current/Remaining invariant.
func (s DayState) Valid() bool {
	return s.Current != nil || len(s.Remaining) == 0
}

// HistoryEntry records an item that was displayed on a given day.
type HistoryEntry struct {
	ID   string `json:"id"`
	Day  string `json:"day"` // YYYY-MM-DD format
	Item Item   `json:"item"`
}
