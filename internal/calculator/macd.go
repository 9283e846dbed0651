package calculator

import "StockPulse/internal/model"

// macdSlow is the longest EMA feeding the MACD line; series shorter
// than this produce a zero MACDValue.
const macdSlow = 26

// MACD computes the MACD line (EMA12 - EMA26), its 9-period signal
// EMA, and the histogram between the two.
func MACD(prices []float64) model.MACDValue {
	if len(prices) < macdSlow+1 {
		return model.MACDValue{}
	}

	fast := emaSeries(prices, 12)
	slow := emaSeries(prices, macdSlow)
	macdLine := make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fast[i] - slow[i]
	}

	signal := emaSeries(macdLine, 9)
	macd := macdLine[len(macdLine)-1]
	sig := signal[len(signal)-1]
	return model.MACDValue{
		MACD:      macd,
		Signal:    sig,
		Histogram: macd - sig,
	}
}
