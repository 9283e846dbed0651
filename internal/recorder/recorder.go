package recorder

import (
	"time"

	"StockPulse/internal/model"
)

// QuoteSnapshot is one recorded quote observation.
type QuoteSnapshot struct {
	Quote *model.Quote
}

// IndicatorSnapshot is one recorded indicator computation.
type IndicatorSnapshot struct {
	Indicators *model.TechnicalIndicatorSet
	Price      float64
}

// FallbackEvent records an absorbed upstream failure, so operators can
// distinguish transient outages from systemic ones even though callers
// see plausible data throughout.
type FallbackEvent struct {
	Symbol    string
	Operation string // "quote", "historical:<period>", "search"
	Err       string
}

// Recorder persists observations for later analysis. Implementations
// must be safe for concurrent use.
type Recorder interface {
	RecordQuote(snap *QuoteSnapshot) error
	RecordIndicators(snap *IndicatorSnapshot) error
	RecordFallback(evt *FallbackEvent) error
	// RecentFallbackCount reports how many fallback events were
	// recorded in the trailing window.
	RecentFallbackCount(window time.Duration) (int, error)
	Close() error
}
