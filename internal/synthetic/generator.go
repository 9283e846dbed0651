// Package synthetic generates plausible substitute market data for use
// when the upstream provider is unavailable. Output is deterministic
// per symbol and day count so repeated fallbacks within a session
// agree with each other.
package synthetic

import (
	"hash/fnv"
	"math/rand"
	"time"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// basePrices anchors well-known tickers to familiar price levels so
// fallback data stays recognizable. Unknown symbols get a hashed base.
var basePrices = map[string]float64{
	"RELIANCE.NSE":   2900,
	"TCS.NSE":        4100,
	"HDFCBANK.NSE":   1650,
	"INFY.NSE":       1850,
	"ICICIBANK.NSE":  1200,
	"HINDUNILVR.NSE": 2400,
	"SBIN.NSE":       820,
	"BHARTIARTL.NSE": 1550,
	"ITC.NSE":        460,
	"WIPRO.NSE":      550,
}

// BasePrice returns the anchor price for a symbol: a static table hit,
// or a value derived from the symbol's hash in the 50-5050 band.
func BasePrice(symbol string) float64 {
	if p, ok := basePrices[symbol]; ok {
		return p
	}
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return 50 + float64(h.Sum64()%5000)
}

// seed derives a per-symbol, per-day RNG seed so the walk is stable
// across calls made on the same day.
func seed(symbol string, now time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	h.Write([]byte(now.Format("2006-01-02")))
	return int64(h.Sum64())
}

// Bars generates days+1 daily bars ending today as a bounded random
// walk off the symbol's base price. Every bar satisfies
// low <= min(open, close) <= max(open, close) <= high.
func Bars(symbol string, days int, now time.Time) []model.HistoricalBar {
	if days < 1 {
		days = 1
	}
	rng := rand.New(rand.NewSource(seed(symbol, now)))
	price := BasePrice(symbol)

	bars := make([]model.HistoricalBar, 0, days+1)
	prevClose := price
	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		// Bounded walk: +-2.5% around the previous close.
		change := (rng.Float64() - 0.5) * 0.05
		closePx := prevClose * (1 + change)
		openPx := prevClose * (1 + (rng.Float64()-0.5)*0.01)

		hi := openPx
		if closePx > hi {
			hi = closePx
		}
		lo := openPx
		if closePx < lo {
			lo = closePx
		}
		high := hi * (1 + rng.Float64()*0.015)
		low := lo * (1 - rng.Float64()*0.015)

		volume := 100000 + rng.Float64()*49900000 // 100K ~ 50M shares

		bars = append(bars, model.HistoricalBar{
			Date:     date,
			Open:     openPx,
			High:     high,
			Low:      low,
			Close:    closePx,
			Volume:   volume,
			AdjClose: closePx,
		})
		prevClose = closePx
	}
	return bars
}

// Quote derives a synthetic quote from a generated series, consistent
// with its last two closes.
func Quote(symbol string, bars []model.HistoricalBar) *model.Quote {
	q := &model.Quote{
		Symbol:    symbol,
		Name:      symbol,
		Source:    model.SourceSynthetic,
		UpdatedAt: time.Now(),
	}
	if len(bars) == 0 {
		q.Price = BasePrice(symbol)
		return q
	}

	last := bars[len(bars)-1]
	q.Price = last.Close
	q.Volume = last.Volume
	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		q.Change = last.Close - prev
		if prev != 0 {
			q.ChangePercent = q.Change / prev * 100
		}
	}
	q.High52w, q.Low52w = calculator.Range52Week(bars)
	q.AvgVolume = calculator.AverageVolume(bars)
	return q
}
