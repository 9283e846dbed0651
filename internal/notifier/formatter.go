package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/model"
)

// FormatOutageAlert formats an alert for a sustained upstream outage.
// Sent once per outage, when consecutive prewarm failures cross the
// alert threshold.
func FormatOutageAlert(providerName string, failures int, lastErr string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔴 <b>StockPulse upstream outage</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Provider: %s\n", providerName))
	b.WriteString(fmt.Sprintf("Consecutive failures: %d\n", failures))
	b.WriteString(fmt.Sprintf("Last error: %s\n\n", lastErr))
	b.WriteString("Historical and indicator requests are degrading to synthetic data; quote requests return no data.\n")
	return b.String()
}

// FormatRecoveryNotice formats the all-clear once the upstream answers
// again after an alerted outage.
func FormatRecoveryNotice(providerName string, downFor time.Duration) string {
	return fmt.Sprintf("🟢 <b>StockPulse upstream recovered</b>\n\nProvider: %s\nDown for: %s\n",
		providerName, downFor.Round(time.Second))
}

// FormatWatchlistDigest formats a prewarm summary across the watchlist.
func FormatWatchlistDigest(quotes []*model.Quote, indicators []*model.TechnicalIndicatorSet) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>StockPulse watchlist</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	bySymbol := make(map[string]*model.TechnicalIndicatorSet, len(indicators))
	for _, ind := range indicators {
		bySymbol[ind.Symbol] = ind
	}

	for _, q := range quotes {
		b.WriteString(fmt.Sprintf("<b>%s</b> %.2f (%+.2f%%)", q.Symbol, q.Price, q.ChangePercent))
		if ind, ok := bySymbol[q.Symbol]; ok {
			b.WriteString(fmt.Sprintf(" | RSI %.0f", ind.RSI))
		}
		if q.Source == model.SourceSynthetic {
			b.WriteString(" [synthetic]")
		}
		b.WriteString("\n")
	}
	return b.String()
}
