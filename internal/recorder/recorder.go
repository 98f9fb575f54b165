package recorder

import (
	"time"

	"GoldSync/internal/model"
)

// CycleSummary is the retained view of one finished cycle.
type CycleSummary struct {
	CycleID    string    `json:"cycleId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	GoldPrice  float64   `json:"goldPrice"`
	PerGram    float64   `json:"pricePerGram"`
	Products   int       `json:"products"`
	Updated    int       `json:"updated"`
	Ineligible int       `json:"ineligible"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures,omitempty"`
}

// Failure describes one failed price record.
type Failure struct {
	ProductID     string `json:"productId"`
	PriceRecordID string `json:"priceId,omitempty"`
	Identifier    string `json:"sku,omitempty"`
	Reason        string `json:"reason"`
}

// Summarize builds the retained summary of a cycle result.
func Summarize(res *model.CycleResult) CycleSummary {
	s := CycleSummary{
		CycleID:    res.CycleID,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		GoldPrice:  res.Quote,
		PerGram:    res.PricePerGram,
		Products:   res.Products,
		Updated:    res.Updated,
		Ineligible: res.Ineligible,
		Failed:     res.Failed,
	}
	for _, o := range res.Outcomes {
		if o.Status != model.OutcomeFailed {
			continue
		}
		s.Failures = append(s.Failures, Failure{
			ProductID:     o.ProductID,
			PriceRecordID: o.PriceRecordID,
			Identifier:    o.Identifier,
			Reason:        o.Reason,
		})
	}
	return s
}

// Recorder keeps the history of finished cycles.
type Recorder interface {
	RecordCycle(res *model.CycleResult) error
	Recent(n int) []CycleSummary
	Close() error
}
