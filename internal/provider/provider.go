package provider

import (
	"context"
	"time"

	"StockPulse/internal/model"
)

// Provider fetches market data from an upstream source. Implementations
// normalize upstream payloads into model types; missing or unparseable
// numeric fields become 0, never NaN.
type Provider interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	FetchHistorical(ctx context.Context, symbol string, from, to time.Time) ([]model.HistoricalBar, error)
	SearchSymbols(ctx context.Context, query string) ([]model.SearchResult, error)
	Name() string
}
