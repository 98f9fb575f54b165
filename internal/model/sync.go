package model

import "time"

// SyncState is the last known outcome of the synchronization loop.
// The zero value means no cycle has completed yet.
type SyncState struct {
	LastQuote  *float64   `json:"goldPrice"`
	SyncCount  int        `json:"syncCount"`
	LastSyncAt *time.Time `json:"lastUpdate"`
}

// OutcomeStatus tags the result of processing one price record.
type OutcomeStatus string

const (
	OutcomeUpdated    OutcomeStatus = "UPDATED"
	OutcomeIneligible OutcomeStatus = "INELIGIBLE"
	OutcomeFailed     OutcomeStatus = "FAILED"
)

// ItemOutcome is the discrete result for a single price record.
type ItemOutcome struct {
	ProductID     string
	PriceRecordID string
	Identifier    string
	Status        OutcomeStatus
	Reason        string
	Breakdown     *PriceBreakdown
	Err           error
}

// CycleResult aggregates every outcome of one synchronization cycle.
type CycleResult struct {
	CycleID      string
	StartedAt    time.Time
	FinishedAt   time.Time
	Quote        float64
	PricePerGram float64
	Products     int
	Updated      int
	Ineligible   int
	Failed       int
	Outcomes     []ItemOutcome
}

// Add folds one outcome into the result.
func (r *CycleResult) Add(o ItemOutcome) {
	switch o.Status {
	case OutcomeUpdated:
		r.Updated++
	case OutcomeIneligible:
		r.Ineligible++
	case OutcomeFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o)
}

// Duration returns how long the cycle ran.
func (r *CycleResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
