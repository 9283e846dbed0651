package service

import (
	"context"
	"log"
	"strings"

	"StockPulse/internal/model"
)

// staticSymbols is the local fallback universe for symbol search, used
// when the upstream search endpoint is unavailable.
var staticSymbols = []model.SearchResult{
	{Symbol: "RELIANCE.NSE", Name: "Reliance Industries Limited"},
	{Symbol: "TCS.NSE", Name: "Tata Consultancy Services Limited"},
	{Symbol: "HDFCBANK.NSE", Name: "HDFC Bank Limited"},
	{Symbol: "INFY.NSE", Name: "Infosys Limited"},
	{Symbol: "ICICIBANK.NSE", Name: "ICICI Bank Limited"},
	{Symbol: "HINDUNILVR.NSE", Name: "Hindustan Unilever Limited"},
	{Symbol: "SBIN.NSE", Name: "State Bank of India"},
	{Symbol: "BHARTIARTL.NSE", Name: "Bharti Airtel Limited"},
	{Symbol: "ITC.NSE", Name: "ITC Limited"},
	{Symbol: "KOTAKBANK.NSE", Name: "Kotak Mahindra Bank Limited"},
	{Symbol: "LT.NSE", Name: "Larsen & Toubro Limited"},
	{Symbol: "AXISBANK.NSE", Name: "Axis Bank Limited"},
	{Symbol: "ASIANPAINT.NSE", Name: "Asian Paints Limited"},
	{Symbol: "MARUTI.NSE", Name: "Maruti Suzuki India Limited"},
	{Symbol: "WIPRO.NSE", Name: "Wipro Limited"},
	{Symbol: "TATAMOTORS.NSE", Name: "Tata Motors Limited"},
	{Symbol: "SUNPHARMA.NSE", Name: "Sun Pharmaceutical Industries Limited"},
	{Symbol: "BAJFINANCE.NSE", Name: "Bajaj Finance Limited"},
	{Symbol: "TITAN.NSE", Name: "Titan Company Limited"},
	{Symbol: "ADANIENT.NSE", Name: "Adani Enterprises Limited"},
}

// SearchStocks runs a symbol search against the upstream, falling back
// to a substring match over the static local list so the caller always
// gets an answer.
func (s *Service) SearchStocks(ctx context.Context, query string) []model.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	results, err := s.provider.SearchSymbols(sctx, query)
	if err == nil && len(results) > 0 {
		return results
	}
	if err != nil {
		log.Printf("[WARN] symbol search %q via %s: %v; using static list", query, s.provider.Name(), err)
	}
	return searchStatic(query)
}

func searchStatic(query string) []model.SearchResult {
	q := strings.ToUpper(query)
	var out []model.SearchResult
	for _, r := range staticSymbols {
		if strings.Contains(strings.ToUpper(r.Symbol), q) ||
			strings.Contains(strings.ToUpper(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}
