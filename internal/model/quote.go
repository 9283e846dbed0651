package model

import "time"

// Data provenance values carried on a Quote.
const (
	SourceLive      = "live"
	SourceSynthetic = "synthetic"
)

// Quote is a point-in-time snapshot for one symbol. Quotes are value
// objects: a new fetch produces a new Quote, existing ones are never
// mutated.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume"`
	MarketCap     float64   `json:"marketCap"`
	PE            float64   `json:"pe"`
	DividendYield float64   `json:"dividendYield"`
	High52w       float64   `json:"high52w"`
	Low52w        float64   `json:"low52w"`
	AvgVolume     float64   `json:"avgVolume"`
	Source        string    `json:"source"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SearchResult is one symbol-search match.
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
