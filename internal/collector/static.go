package collector

import (
	"context"
	"time"

	"GoldSync/internal/model"
)

// StaticFetcher returns a fixed quote for development and testing.
type StaticFetcher struct {
	Ask float64
	Err error
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) FetchQuote(_ context.Context) (*model.Quote, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Ask <= 0 {
		return nil, ErrMissingAsk
	}
	return &model.Quote{Ask: s.Ask, Source: s.Name(), FetchedAt: time.Now()}, nil
}
