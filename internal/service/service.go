// Package service implements the stock-data engine: cached quotes,
// historical series, and derived technical indicators, degrading to
// synthetic data when the upstream provider is unavailable.
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockPulse/internal/cache"
	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
	"StockPulse/internal/provider"
	"StockPulse/internal/recorder"
	"StockPulse/internal/synthetic"
)

// Service is the stock-data engine. Construct one at process start and
// share it; it is safe for concurrent use. No public operation returns
// an error: each has a defined failure value (nil quote, synthetic
// series, static search results) and all absorbed failures are logged.
type Service struct {
	provider provider.Provider
	cache    cache.Store
	rec      recorder.Recorder
	timeout  time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// New wires a Service. rec may be nil; upstreamTimeout bounds every
// provider call so a hung upstream never blocks a caller indefinitely.
func New(p provider.Provider, store cache.Store, rec recorder.Recorder, upstreamTimeout time.Duration) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if upstreamTimeout <= 0 {
		upstreamTimeout = 10 * time.Second
	}
	return &Service{
		provider: p,
		cache:    store,
		rec:      rec,
		timeout:  upstreamTimeout,
		now:      time.Now,
	}
}

// GetQuote returns the current quote for a symbol, or nil when the
// upstream fails. Quotes are display data, so there is no synthetic
// fallback here; series-shaped data gets one because downstream
// chart and indicator code must never see an empty input.
func (s *Service) GetQuote(ctx context.Context, symbol string) *model.Quote {
	key := cache.QuoteKey(symbol)
	if q, ok := s.cache.GetQuote(ctx, key); ok {
		return q
	}

	q, err := s.fetchQuote(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] quote fetch %s via %s: %v", symbol, s.provider.Name(), err)
		if rerr := s.rec.RecordFallback(&recorder.FallbackEvent{
			Symbol: symbol, Operation: "quote", Err: err.Error(),
		}); rerr != nil {
			log.Printf("[ERROR] record fallback: %v", rerr)
		}
		return nil
	}

	s.cache.SetQuote(ctx, key, q)
	return q
}

// GetHistoricalData returns a daily series for the symbol and period.
// Never empty: upstream failure or an empty payload falls back to a
// synthetic series, which is cached like real data so a flapping
// upstream is not hammered.
func (s *Service) GetHistoricalData(ctx context.Context, symbol string, period model.Period) []model.HistoricalBar {
	key := cache.HistoricalKey(symbol, period)
	if bars, ok := s.cache.GetBars(ctx, key); ok {
		return bars
	}

	now := s.now()
	bars, err := s.fetchHistorical(ctx, symbol, period.Start(now), now)
	if err == nil && len(bars) == 0 {
		// An empty payload with a 200 is still a failure for callers:
		// chart and indicator code must never see an empty series.
		err = fmt.Errorf("upstream returned an empty series")
	}
	if err != nil {
		log.Printf("[WARN] historical fetch %s %s via %s: %v; generating synthetic series",
			symbol, period, s.provider.Name(), err)
		if rerr := s.rec.RecordFallback(&recorder.FallbackEvent{
			Symbol: symbol, Operation: "historical:" + string(period), Err: err.Error(),
		}); rerr != nil {
			log.Printf("[ERROR] record fallback: %v", rerr)
		}
		bars = synthetic.Bars(symbol, period.Days(now), now)
	}

	s.cache.SetBars(ctx, key, bars)
	return bars
}

// GetTechnicalIndicators derives the indicator set for a symbol from a
// one-year series and its current quote. Returns nil when no quote is
// available: indicators without a current reference price are not
// meaningful.
func (s *Service) GetTechnicalIndicators(ctx context.Context, symbol string) *model.TechnicalIndicatorSet {
	key := cache.IndicatorsKey(symbol)
	if ind, ok := s.cache.GetIndicators(ctx, key); ok {
		return ind
	}

	bars := s.GetHistoricalData(ctx, symbol, model.Period1y)
	quote := s.GetQuote(ctx, symbol)
	if quote == nil {
		return nil
	}

	closes := model.Closes(bars)
	ind := &model.TechnicalIndicatorSet{
		Symbol:           symbol,
		RSI:              calculator.RSI(closes, 14),
		MACD:             calculator.MACD(closes),
		SMA20:            calculator.SMA(closes, 20),
		SMA50:            calculator.SMA(closes, 50),
		SMA200:           calculator.SMA(closes, 200),
		EMA12:            calculator.EMA(closes, 12),
		EMA26:            calculator.EMA(closes, 26),
		Volume:           quote.Volume,
		AvgVolume:        quote.AvgVolume,
		Change24h:        quote.Change,
		ChangePercent24h: quote.ChangePercent,
	}
	if ind.AvgVolume == 0 {
		ind.AvgVolume = calculator.AverageVolume(bars)
	}

	s.cache.SetIndicators(ctx, key, ind)
	return ind
}

// InvalidateSymbol drops every cached entry for a symbol, forcing the
// next request to refetch.
func (s *Service) InvalidateSymbol(ctx context.Context, symbol string) {
	s.cache.Invalidate(ctx, cache.QuoteKey(symbol))
	s.cache.Invalidate(ctx, cache.IndicatorsKey(symbol))
	for _, p := range []model.Period{
		model.Period1d, model.Period5d, model.Period1mo, model.Period3mo,
		model.Period6mo, model.Period1y, model.Period2y, model.Period5y,
		model.Period10y, model.PeriodYtd, model.PeriodMax,
	} {
		s.cache.Invalidate(ctx, cache.HistoricalKey(symbol, p))
	}
}

// fetchQuote is the fetch stage only: bounded call, no fallback policy.
func (s *Service) fetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.provider.FetchQuote(ctx, symbol)
}

// fetchHistorical is the fetch stage only; the caller decides whether
// an error turns into synthetic data.
func (s *Service) fetchHistorical(ctx context.Context, symbol string, from, to time.Time) ([]model.HistoricalBar, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.provider.FetchHistorical(ctx, symbol, from, to)
}
