package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockPulse/internal/model"
)

// RESTProvider implements Provider against a self-hosted market-data
// REST API. Used when an organization proxies its own feed instead of
// hitting Yahoo directly.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (p *RESTProvider) Name() string { return "rest" }

func (p *RESTProvider) get(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("rest fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rest read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rest: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("rest decode: %w", err)
	}
	return nil
}

// restQuote is the expected JSON shape of the quote endpoint.
type restQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	PE            float64 `json:"pe"`
	DividendYield float64 `json:"dividendYield"`
	High52w       float64 `json:"high52w"`
	Low52w        float64 `json:"low52w"`
	AvgVolume     float64 `json:"avgVolume"`
	Timestamp     int64   `json:"timestamp"`
}

func (p *RESTProvider) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", p.BaseURL, url.QueryEscape(symbol))
	var rq restQuote
	if err := p.get(ctx, endpoint, &rq); err != nil {
		return nil, err
	}

	updated := time.Now()
	if rq.Timestamp > 0 {
		updated = time.Unix(rq.Timestamp, 0)
	}
	return &model.Quote{
		Symbol:        symbol,
		Name:          rq.Name,
		Price:         rq.Price,
		Change:        rq.Change,
		ChangePercent: rq.ChangePercent,
		Volume:        rq.Volume,
		MarketCap:     rq.MarketCap,
		PE:            rq.PE,
		DividendYield: rq.DividendYield,
		High52w:       rq.High52w,
		Low52w:        rq.Low52w,
		AvgVolume:     rq.AvgVolume,
		Source:        model.SourceLive,
		UpdatedAt:     updated,
	}, nil
}

// restBar is the expected JSON shape of the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	AdjClose  float64 `json:"adjClose"`
}

func (p *RESTProvider) FetchHistorical(ctx context.Context, symbol string, from, to time.Time) ([]model.HistoricalBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars?symbol=%s&from=%d&to=%d",
		p.BaseURL, url.QueryEscape(symbol), from.Unix(), to.Unix())

	var raw []restBar
	if err := p.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("rest: no historical data for %s", symbol)
	}

	bars := make([]model.HistoricalBar, 0, len(raw))
	for _, b := range raw {
		ac := b.AdjClose
		if ac == 0 {
			ac = b.Close
		}
		bars = append(bars, model.HistoricalBar{
			Date:     time.Unix(b.Timestamp, 0),
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			Volume:   b.Volume,
			AdjClose: ac,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (p *RESTProvider) SearchSymbols(ctx context.Context, query string) ([]model.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/api/v1/search?q=%s", p.BaseURL, url.QueryEscape(query))
	var results []model.SearchResult
	if err := p.get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	return results, nil
}
