package model

import "time"

// HistoricalBar is one trading-day observation.
type HistoricalBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
	AdjClose float64   `json:"adjClose"`
}

// Closes extracts the closing prices of a series, oldest first.
func Closes(bars []HistoricalBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
