package notify

import (
	"sync"
	"time"
)

const FeedCap = 100

type Notification struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed is the append-only, capped, user-facing notification sink. It is
// deliberately in-memory: notifications are consumed by the UI on a timer
// and do not need to survive a reload precisely.
type Feed struct {
	mu       sync.Mutex
	byPlayer map[string][]Notification
	now      func() time.Time
}

func NewFeed() *Feed {
	return &Feed{byPlayer: map[string][]Notification{}, now: time.Now}
}

// NewFeedAt injects the clock for tests.
func NewFeedAt(now func() time.Time) *Feed {
	f := NewFeed()
	if now != nil {
		f.now = now
	}
	return f
}

func (f *Feed) Notify(playerID, message string) {
	if playerID == "" || message == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := append(f.byPlayer[playerID], Notification{Message: message, At: f.now()})
	if len(entries) > FeedCap {
		entries = entries[len(entries)-FeedCap:]
	}
	f.byPlayer[playerID] = entries
}

// List returns a copy of the player's feed, oldest first.
func (f *Feed) List(playerID string) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.byPlayer[playerID]
	out := make([]Notification, len(entries))
	copy(out, entries)
	return out
}

func (f *Feed) Clear(playerID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byPlayer, playerID)
}
