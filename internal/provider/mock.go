package provider

import (
	"context"
	"sync/atomic"
	"time"

	"StockPulse/internal/model"
)

// MockProvider returns controllable fixed data for development and
// testing. Call counters let tests assert how often the upstream was
// actually consulted.
type MockProvider struct {
	Quote   *model.Quote
	Bars    []model.HistoricalBar
	Results []model.SearchResult

	QuoteErr      error
	HistoricalErr error
	SearchErr     error

	QuoteCalls      atomic.Int64
	HistoricalCalls atomic.Int64
	SearchCalls     atomic.Int64
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	m.QuoteCalls.Add(1)
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	if m.Quote != nil {
		return m.Quote, nil
	}
	return &model.Quote{
		Symbol:    symbol,
		Name:      symbol,
		Price:     100,
		Source:    model.SourceLive,
		UpdatedAt: time.Now(),
	}, nil
}

func (m *MockProvider) FetchHistorical(_ context.Context, _ string, from, to time.Time) ([]model.HistoricalBar, error) {
	m.HistoricalCalls.Add(1)
	if m.HistoricalErr != nil {
		return nil, m.HistoricalErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return FixedBars(100, from, to), nil
}

func (m *MockProvider) SearchSymbols(_ context.Context, _ string) ([]model.SearchResult, error) {
	m.SearchCalls.Add(1)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Results, nil
}

// FixedBars builds a deterministic daily series drifting gently around
// a base price, one bar per calendar day of [from, to].
func FixedBars(basePrice float64, from, to time.Time) []model.HistoricalBar {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	bars := make([]model.HistoricalBar, days)
	for i := 0; i < days; i++ {
		p := basePrice * (1 + float64(i-days/2)*0.001)
		bars[i] = model.HistoricalBar{
			Date:     from.AddDate(0, 0, i),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			Volume:   1000000,
			AdjClose: p,
		}
	}
	return bars
}
