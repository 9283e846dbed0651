package calculator

// SMA computes the simple moving average of the last `period` prices.
// Returns 0 when fewer than `period` prices exist.
func SMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period)
}

// EMA computes the exponential moving average over the whole series,
// seeded with the first price rather than an SMA warm-up. Returns 0
// when fewer than `period` prices exist.
func EMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	s := emaSeries(prices, period)
	return s[len(s)-1]
}

// emaSeries returns the running EMA at every point of the series,
// seeded with prices[0]. Callers guarantee len(prices) > 0.
func emaSeries(prices []float64, period int) []float64 {
	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}
