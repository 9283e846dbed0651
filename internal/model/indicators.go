package model

// MACDValue holds the three MACD components.
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// TechnicalIndicatorSet holds all indicators derived from one symbol's
// closing-price history plus its current quote.
type TechnicalIndicatorSet struct {
	Symbol           string    `json:"symbol"`
	RSI              float64   `json:"rsi"` // 0 ~ 100
	MACD             MACDValue `json:"macd"`
	SMA20            float64   `json:"sma20"`
	SMA50            float64   `json:"sma50"`
	SMA200           float64   `json:"sma200"`
	EMA12            float64   `json:"ema12"`
	EMA26            float64   `json:"ema26"`
	Volume           float64   `json:"volume"`
	AvgVolume        float64   `json:"avgVolume"`
	Change24h        float64   `json:"change24h"`
	ChangePercent24h float64   `json:"changePercent24h"`
}
