package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRESTProvider_FetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("auth header = %q", got)
		}
		w.Write([]byte(`{"symbol":"INFY.NSE","name":"Infosys Limited","price":1850.2,"change":-4.1,"changePercent":-0.22,"volume":3100000}`))
	}))
	defer srv.Close()

	p := NewRESTProvider(srv.URL, "sekrit", "", time.Second)
	q, err := p.FetchQuote(context.Background(), "INFY.NSE")
	if err != nil {
		t.Fatalf("FetchQuote: %v", err)
	}
	if q.Price != 1850.2 || q.Change != -4.1 {
		t.Errorf("quote = %+v", q)
	}
}

func TestRESTProvider_FetchHistorical_SortsAscending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Deliberately out of order; provider must sort.
		w.Write([]byte(`[
			{"timestamp":1700172800,"open":102,"high":106,"low":101,"close":105,"volume":1200000},
			{"timestamp":1700000000,"open":100,"high":105,"low":99,"close":104,"volume":1000000}
		]`))
	}))
	defer srv.Close()

	p := NewRESTProvider(srv.URL, "", "", time.Second)
	bars, err := p.FetchHistorical(context.Background(), "X.NSE", time.Unix(1700000000, 0), time.Unix(1700172800, 0))
	if err != nil {
		t.Fatalf("FetchHistorical: %v", err)
	}
	if len(bars) != 2 || !bars[0].Date.Before(bars[1].Date) {
		t.Fatalf("bars not sorted: %+v", bars)
	}
	if bars[0].AdjClose != 104 {
		t.Errorf("zero adjClose should default to close, got %v", bars[0].AdjClose)
	}
}

func TestRESTProvider_EmptySeriesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewRESTProvider(srv.URL, "", "", time.Second)
	if _, err := p.FetchHistorical(context.Background(), "X.NSE", time.Now().AddDate(0, -1, 0), time.Now()); err == nil {
		t.Error("expected error for empty payload so the caller can fall back")
	}
}
