package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/service"
)

// alertThreshold is the number of consecutive fully failed prewarm
// rounds before an outage alert is sent.
const alertThreshold = 3

// fallbackWindow is how far back recorded fallback events count toward
// the outage decision. The in-memory round counter resets on restart;
// recorded events restore the picture of an outage already in progress.
const fallbackWindow = 15 * time.Minute

// Scheduler periodically prewarms the cache for the configured
// watchlist, records snapshots, and alerts operators when the upstream
// has been failing long enough that callers are living on synthetic
// data.
type Scheduler struct {
	Cron      *cron.Cron
	Service   *service.Service
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier
	Watchlist []string
	Ctx       context.Context

	mu           sync.Mutex
	failedRounds int
	lastErr      string
	alertedAt    time.Time
	providerName string
}

// NewScheduler creates a Scheduler. providerName is used in alerts.
func NewScheduler(ctx context.Context, svc *service.Service, rec recorder.Recorder, tn *notifier.TelegramNotifier, watchlist []string, providerName string) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Service:      svc,
		Recorder:     rec,
		Notifier:     tn,
		Watchlist:    watchlist,
		Ctx:          ctx,
		providerName: providerName,
	}
}

// Register installs the prewarm task under the given cron expression.
func (s *Scheduler) Register(prewarmCron string) error {
	if _, err := s.Cron.AddFunc(prewarmCron, s.prewarmTask); err != nil {
		return fmt.Errorf("register prewarm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunPrewarmNow executes the prewarm task immediately (for manual
// trigger / RUN_ON_START).
func (s *Scheduler) RunPrewarmNow() {
	s.prewarmTask()
}

// prewarmTask walks the watchlist, warming quote and indicator caches
// ahead of user traffic and recording what it saw.
func (s *Scheduler) prewarmTask() {
	log.Printf("[INFO] prewarming %d watchlist symbols", len(s.Watchlist))

	var liveQuotes int
	var lastErr string
	for _, symbol := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}

		quote := s.Service.GetQuote(s.Ctx, symbol)
		if quote == nil {
			lastErr = fmt.Sprintf("no quote for %s", symbol)
		} else {
			liveQuotes++
			if err := s.Recorder.RecordQuote(&recorder.QuoteSnapshot{Quote: quote}); err != nil {
				log.Printf("[ERROR] record quote %s: %v", symbol, err)
			}
		}

		ind := s.Service.GetTechnicalIndicators(s.Ctx, symbol)
		if ind != nil {
			price := 0.0
			if quote != nil {
				price = quote.Price
			}
			if err := s.Recorder.RecordIndicators(&recorder.IndicatorSnapshot{Indicators: ind, Price: price}); err != nil {
				log.Printf("[ERROR] record indicators %s: %v", symbol, err)
			}
		}
	}

	if liveQuotes == 0 && len(s.Watchlist) > 0 {
		s.noteFailedRound(lastErr)
	} else {
		s.noteHealthyRound()
	}
}

func (s *Scheduler) noteFailedRound(lastErr string) {
	// A fully failed round records at least one fallback event per
	// watchlist symbol, so a threshold's worth of recent events means
	// the outage predates this process.
	recorded, err := s.Recorder.RecentFallbackCount(fallbackWindow)
	if err != nil {
		log.Printf("[WARN] query recent fallbacks: %v", err)
	}

	s.mu.Lock()
	s.failedRounds++
	s.lastErr = lastErr
	failures := s.failedRounds
	outage := failures >= alertThreshold ||
		recorded >= alertThreshold*len(s.Watchlist)
	alert := outage && s.alertedAt.IsZero()
	if alert {
		s.alertedAt = time.Now()
	}
	s.mu.Unlock()

	log.Printf("[WARN] prewarm round failed entirely (%d consecutive, %d recorded fallbacks): %s",
		failures, recorded, lastErr)
	if alert {
		s.trySend(notifier.FormatOutageAlert(s.providerName, failures, lastErr))
	}
}

func (s *Scheduler) noteHealthyRound() {
	s.mu.Lock()
	wasAlerted := !s.alertedAt.IsZero()
	downFor := time.Since(s.alertedAt)
	s.failedRounds = 0
	s.alertedAt = time.Time{}
	s.mu.Unlock()

	if wasAlerted {
		s.trySend(notifier.FormatRecoveryNotice(s.providerName, downFor))
	}
}

// HandleCommand processes a Telegram command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/watchlist":
		return s.watchlistDigest()
	case "/quote":
		if len(fields) < 2 {
			return "usage: /quote SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		q := s.Service.GetQuote(s.Ctx, symbol)
		if q == nil {
			return fmt.Sprintf("no quote available for %s", symbol)
		}
		return fmt.Sprintf("<b>%s</b> %s\nprice: %.2f (%+.2f, %+.2f%%)\nvolume: %.0f",
			q.Symbol, q.Name, q.Price, q.Change, q.ChangePercent, q.Volume)
	case "/refresh":
		if len(fields) < 2 {
			return "usage: /refresh SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		s.Service.InvalidateSymbol(s.Ctx, symbol)
		return fmt.Sprintf("cache invalidated for %s", symbol)
	default:
		return "commands:\n• /watchlist\n• /quote SYMBOL\n• /refresh SYMBOL"
	}
}

func (s *Scheduler) watchlistDigest() string {
	var quotes []*model.Quote
	var indicators []*model.TechnicalIndicatorSet
	for _, symbol := range s.Watchlist {
		if q := s.Service.GetQuote(s.Ctx, symbol); q != nil {
			quotes = append(quotes, q)
		}
		if ind := s.Service.GetTechnicalIndicators(s.Ctx, symbol); ind != nil {
			indicators = append(indicators, ind)
		}
	}
	if len(quotes) == 0 {
		return "no quotes available"
	}
	return notifier.FormatWatchlistDigest(quotes, indicators)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
