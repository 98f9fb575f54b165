package state

import (
	"sync"
	"time"

	"GoldSync/internal/model"
)

// Tracker owns the process-wide SyncState. The orchestrator is its only
// writer; readers always receive copies.
type Tracker struct {
	mu    sync.RWMutex
	state model.SyncState
}

// NewTracker creates a Tracker in the never-synced state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// GetState returns a copy of the current sync state.
func (t *Tracker) GetState() model.SyncState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyState(t.state)
}

// RecordSync marks one completed cycle and returns the new state.
func (t *Tracker) RecordSync(quote float64, at time.Time) model.SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = model.SyncState{
		LastQuote:  &quote,
		SyncCount:  t.state.SyncCount + 1,
		LastSyncAt: &at,
	}
	return copyState(t.state)
}

func copyState(s model.SyncState) model.SyncState {
	out := model.SyncState{SyncCount: s.SyncCount}
	if s.LastQuote != nil {
		q := *s.LastQuote
		out.LastQuote = &q
	}
	if s.LastSyncAt != nil {
		at := *s.LastSyncAt
		out.LastSyncAt = &at
	}
	return out
}
