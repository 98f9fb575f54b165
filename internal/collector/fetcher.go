package collector

import (
	"context"

	"GoldSync/internal/model"
)

// QuoteFetcher defines the interface for fetching the gold spot quote.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context) (*model.Quote, error)
	Name() string
}
