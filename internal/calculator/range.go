package calculator

import (
	"math"

	"StockPulse/internal/model"
)

// Range52Week scans the most recent 252 trading days of a series and
// returns its high and low. Returns (0, 0) for an empty series.
func Range52Week(bars []model.HistoricalBar) (high, low float64) {
	if len(bars) == 0 {
		return 0, 0
	}
	start := len(bars) - 252
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low
}

// AverageVolume returns the mean traded volume of a series, 0 when empty.
func AverageVolume(bars []model.HistoricalBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}
