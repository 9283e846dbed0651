package cache

import (
	"context"
	"fmt"

	"StockPulse/internal/model"
)

// Store is the caching port used by the data service. Implementations
// return (zero, false) for missing or expired entries; transport
// problems degrade to a miss, never an error, so callers always have
// the refetch path available.
//
// Values handed to Set are owned by the store from that point on and
// values handed back by Get must be treated as immutable.
type Store interface {
	GetQuote(ctx context.Context, key string) (*model.Quote, bool)
	SetQuote(ctx context.Context, key string, q *model.Quote)
	GetBars(ctx context.Context, key string) ([]model.HistoricalBar, bool)
	SetBars(ctx context.Context, key string, bars []model.HistoricalBar)
	GetIndicators(ctx context.Context, key string) (*model.TechnicalIndicatorSet, bool)
	SetIndicators(ctx context.Context, key string, ind *model.TechnicalIndicatorSet)

	Invalidate(ctx context.Context, key string)
	Clear(ctx context.Context)
	Close() error
}

// Key builders shared by all store implementations.

func QuoteKey(symbol string) string { return "quote:" + symbol }

func HistoricalKey(symbol string, period model.Period) string {
	return fmt.Sprintf("historical:%s:%s", symbol, period)
}

func IndicatorsKey(symbol string) string { return "indicators:" + symbol }
