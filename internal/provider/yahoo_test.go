package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestYahooSymbolMapping(t *testing.T) {
	p := NewYahooProvider("", 0)
	tests := []struct {
		in, want string
	}{
		{"RELIANCE.NSE", "RELIANCE.NS"},
		{"TATAMOTORS.BSE", "TATAMOTORS.BO"},
		{"NIFTY50", "^NSEI"},
		{"SENSEX", "^BSESN"},
		{"AAPL", "AAPL"},
	}
	for _, tt := range tests {
		if got := p.yahooSymbol(tt.in); got != tt.want {
			t.Errorf("yahooSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{42.5, 42.5},
		{7, 7},
		{"3.14", 3.14},
		{"not a number", 0},
		{json.Number("2.5"), 2.5},
		{json.Number("x"), 0},
		{true, 0},
	}
	for _, tt := range tests {
		if got := toFloat(tt.in); got != tt.want {
			t.Errorf("toFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFetchQuote_Normalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v7/finance/quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbols"); got != "RELIANCE.NS" {
			t.Errorf("symbols param = %q, want RELIANCE.NS", got)
		}
		// trailingPE missing, marketCap a string: both must normalize.
		w.Write([]byte(`{"quoteResponse":{"result":[{
			"symbol":"RELIANCE.NS",
			"longName":"Reliance Industries Limited",
			"regularMarketPrice":2850.75,
			"regularMarketChange":12.5,
			"regularMarketChangePercent":0.44,
			"regularMarketVolume":5250000,
			"marketCap":"19300000000000",
			"fiftyTwoWeekHigh":3024.9,
			"fiftyTwoWeekLow":2221.05
		}],"error":null}}`))
	}))
	defer srv.Close()

	p := NewYahooProvider("", time.Second)
	p.BaseURL = srv.URL

	q, err := p.FetchQuote(context.Background(), "RELIANCE.NSE")
	if err != nil {
		t.Fatalf("FetchQuote: %v", err)
	}
	if q.Symbol != "RELIANCE.NSE" {
		t.Errorf("symbol = %q, want caller spelling RELIANCE.NSE", q.Symbol)
	}
	if q.Name != "Reliance Industries Limited" {
		t.Errorf("name = %q", q.Name)
	}
	if q.Price != 2850.75 || q.Change != 12.5 {
		t.Errorf("price/change = %v/%v", q.Price, q.Change)
	}
	if q.MarketCap != 19300000000000 {
		t.Errorf("string market cap not coerced: %v", q.MarketCap)
	}
	if q.PE != 0 {
		t.Errorf("missing PE should default to 0, got %v", q.PE)
	}
	if q.Source != "live" {
		t.Errorf("source = %q, want live", q.Source)
	}
}

func TestFetchQuote_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	p := NewYahooProvider("", time.Second)
	p.BaseURL = srv.URL

	if _, err := p.FetchQuote(context.Background(), "NOPE.NSE"); err == nil {
		t.Error("expected error from API error payload")
	}
}

func TestFetchHistorical_ParsesAndSkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1700000000,1700086400,1700172800],
			"indicators":{
				"quote":[{
					"open":[100,null,102],
					"high":[105,null,106],
					"low":[99,null,101],
					"close":[104,null,105],
					"volume":[1000000,null,1200000]
				}],
				"adjclose":[{"adjclose":[103.5,null,104.7]}]
			}
		}],"error":null}}`))
	}))
	defer srv.Close()

	p := NewYahooProvider("", time.Second)
	p.BaseURL = srv.URL

	from := time.Unix(1700000000, 0)
	to := time.Unix(1700172800, 0)
	bars, err := p.FetchHistorical(context.Background(), "TCS.NSE", from, to)
	if err != nil {
		t.Fatalf("FetchHistorical: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (null bar skipped)", len(bars))
	}
	if bars[0].Close != 104 || bars[0].AdjClose != 103.5 {
		t.Errorf("first bar = %+v", bars[0])
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("bars not ascending by date")
	}
}

func TestFetchHistorical_AllNullBarsIsError(t *testing.T) {
	// A one-day range over a market holiday: timestamps exist but every
	// row is null. Must be an error, not an empty success.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1700000000],
			"indicators":{
				"quote":[{
					"open":[null],
					"high":[null],
					"low":[null],
					"close":[null],
					"volume":[null]
				}]
			}
		}],"error":null}}`))
	}))
	defer srv.Close()

	p := NewYahooProvider("", time.Second)
	p.BaseURL = srv.URL

	from := time.Unix(1700000000, 0)
	bars, err := p.FetchHistorical(context.Background(), "TCS.NSE", from, from.AddDate(0, 0, 1))
	if err == nil {
		t.Fatalf("expected error when every bar is null, got %d bars", len(bars))
	}
}

func TestFetchHistorical_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewYahooProvider("", time.Second)
	p.BaseURL = srv.URL

	if _, err := p.FetchHistorical(context.Background(), "TCS.NSE", time.Now().AddDate(0, -1, 0), time.Now()); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestSearchSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "reliance" {
			t.Errorf("q param = %q", got)
		}
		w.Write([]byte(`{"quotes":[
			{"symbol":"RELIANCE.NS","longname":"Reliance Industries Limited","quoteType":"EQUITY"},
			{"symbol":"","shortname":"junk"},
			{"symbol":"RELI","shortname":"Reliance Global Group"}
		]}`))
	}))
	defer srv.Close()

	p := NewYahooProvider("", time.Second)
	p.BaseURL = srv.URL

	results, err := p.SearchSymbols(context.Background(), "reliance")
	if err != nil {
		t.Fatalf("SearchSymbols: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (empty symbol dropped)", len(results))
	}
	if results[0].Symbol != "RELIANCE.NS" || results[0].Name != "Reliance Industries Limited" {
		t.Errorf("first result = %+v", results[0])
	}
}
