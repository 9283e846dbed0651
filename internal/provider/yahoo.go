package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/model"
)

// YahooProvider implements Provider using the Yahoo Finance public API.
type YahooProvider struct {
	Client    *http.Client
	BaseURL   string            // overridable for tests
	SymbolMap map[string]string // maps index shorthands to Yahoo tickers
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy
// support.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
		SymbolMap: map[string]string{
			"NIFTY50":   "^NSEI",
			"NIFTY":     "^NSEI",
			"BANKNIFTY": "^NSEBANK",
			"SENSEX":    "^BSESN",
			"SPX500":    "^GSPC",
		},
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooSymbol translates exchange-qualified symbols (RELIANCE.NSE) to
// Yahoo's suffixes (RELIANCE.NS) and resolves known index shorthands.
func (p *YahooProvider) yahooSymbol(symbol string) string {
	if mapped, ok := p.SymbolMap[symbol]; ok {
		return mapped
	}
	if s, ok := strings.CutSuffix(symbol, ".NSE"); ok {
		return s + ".NS"
	}
	if s, ok := strings.CutSuffix(symbol, ".BSE"); ok {
		return s + ".BO"
	}
	return symbol
}

// toFloat coerces the loosely typed numerics Yahoo returns. Anything
// unparseable becomes 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (p *YahooProvider) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// yahooQuote is the response shape of the v7 quote API. Numeric fields
// are kept loosely typed so partial or malformed records still yield a
// usable quote.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string `json:"symbol"`
			LongName                   string `json:"longName"`
			ShortName                  string `json:"shortName"`
			RegularMarketPrice         any    `json:"regularMarketPrice"`
			RegularMarketChange        any    `json:"regularMarketChange"`
			RegularMarketChangePercent any    `json:"regularMarketChangePercent"`
			RegularMarketVolume        any    `json:"regularMarketVolume"`
			MarketCap                  any    `json:"marketCap"`
			TrailingPE                 any    `json:"trailingPE"`
			TrailingAnnualDividendYield any   `json:"trailingAnnualDividendYield"`
			FiftyTwoWeekHigh           any    `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow            any    `json:"fiftyTwoWeekLow"`
			AverageDailyVolume3Month   any    `json:"averageDailyVolume3Month"`
			RegularMarketTime          any    `json:"regularMarketTime"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// FetchQuote fetches and normalizes a current quote. The returned
// quote keeps the caller's symbol spelling, not Yahoo's.
func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		p.BaseURL, url.QueryEscape(p.yahooSymbol(symbol)))

	var out yahooQuote
	if err := p.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	if out.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", out.QuoteResponse.Error.Description)
	}
	if len(out.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", symbol)
	}

	r := out.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	updated := time.Now()
	if ts := toFloat(r.RegularMarketTime); ts > 0 {
		updated = time.Unix(int64(ts), 0)
	}
	return &model.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         toFloat(r.RegularMarketPrice),
		Change:        toFloat(r.RegularMarketChange),
		ChangePercent: toFloat(r.RegularMarketChangePercent),
		Volume:        toFloat(r.RegularMarketVolume),
		MarketCap:     toFloat(r.MarketCap),
		PE:            toFloat(r.TrailingPE),
		DividendYield: toFloat(r.TrailingAnnualDividendYield),
		High52w:       toFloat(r.FiftyTwoWeekHigh),
		Low52w:        toFloat(r.FiftyTwoWeekLow),
		AvgVolume:     toFloat(r.AverageDailyVolume3Month),
		Source:        model.SourceLive,
		UpdatedAt:     updated,
	}, nil
}

// yahooChart is the response shape of the v8 chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []any `json:"open"`
					High   []any `json:"high"`
					Low    []any `json:"low"`
					Close  []any `json:"close"`
					Volume []any `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []any `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistorical fetches daily bars for [from, to], ascending by date.
// Null bars (holidays) are skipped.
func (p *YahooProvider) FetchHistorical(ctx context.Context, symbol string, from, to time.Time) ([]model.HistoricalBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		p.BaseURL, url.PathEscape(p.yahooSymbol(symbol)), from.Unix(), to.Unix())

	var chart yahooChart
	if err := p.getJSON(ctx, u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no historical data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: malformed chart payload for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	var adj []any
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	at := func(vals []any, i int) float64 {
		if i >= len(vals) {
			return 0
		}
		return toFloat(vals[i])
	}

	bars := make([]model.HistoricalBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		ac := at(adj, i)
		if ac == 0 {
			ac = c
		}
		bars = append(bars, model.HistoricalBar{
			Date:     time.Unix(ts, 0),
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			Volume:   at(quote.Volume, i),
			AdjClose: ac,
		})
	}
	if len(bars) == 0 {
		// Timestamps can exist while every row is null, e.g. a one-day
		// range over a market holiday.
		return nil, fmt.Errorf("yahoo: no usable bars for %s", symbol)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// yahooSearch is the response shape of the v1 search API.
type yahooSearch struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// SearchSymbols runs a best-effort text search for equity tickers.
func (p *YahooProvider) SearchSymbols(ctx context.Context, query string) ([]model.SearchResult, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0",
		p.BaseURL, url.QueryEscape(query))

	var out yahooSearch
	if err := p.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(out.Quotes))
	for _, q := range out.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, model.SearchResult{Symbol: q.Symbol, Name: name})
	}
	return results, nil
}
