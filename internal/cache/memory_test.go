package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/model"
)

// newTestStore returns a store with a controllable clock and no
// running janitor interference (sweep interval far in the future).
func newTestStore(ttl time.Duration) (*MemoryStore, *time.Time) {
	s := NewMemoryStore(ttl, time.Hour)
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStore_SetGetWithinTTL(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)
	defer s.Close()
	ctx := context.Background()

	q := &model.Quote{Symbol: "RELIANCE.NSE", Price: 2850.5}
	s.SetQuote(ctx, QuoteKey(q.Symbol), q)

	got, ok := s.GetQuote(ctx, QuoteKey(q.Symbol))
	if !ok {
		t.Fatal("expected cache hit within TTL")
	}
	if got.Symbol != q.Symbol || got.Price != q.Price {
		t.Errorf("got %+v, want %+v", got, q)
	}
}

func TestMemoryStore_ExpiredEntryIsAbsent(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.SetQuote(ctx, "quote:TCS.NSE", &model.Quote{Symbol: "TCS.NSE"})
	*now = now.Add(5*time.Minute + time.Second)

	if _, ok := s.GetQuote(ctx, "quote:TCS.NSE"); ok {
		t.Error("expected expired entry to read as absent")
	}
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.SetQuote(ctx, "quote:INFY.NSE", &model.Quote{Price: 100})
	s.SetQuote(ctx, "quote:INFY.NSE", &model.Quote{Price: 200})

	got, ok := s.GetQuote(ctx, "quote:INFY.NSE")
	if !ok || got.Price != 200 {
		t.Errorf("got %+v, want overwritten price 200", got)
	}
}

func TestMemoryStore_InvalidateAndClear(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.SetQuote(ctx, "quote:A", &model.Quote{})
	s.SetBars(ctx, "historical:A:1y", []model.HistoricalBar{{Close: 1}})

	s.Invalidate(ctx, "quote:A")
	if _, ok := s.GetQuote(ctx, "quote:A"); ok {
		t.Error("expected invalidated entry to be absent")
	}
	if _, ok := s.GetBars(ctx, "historical:A:1y"); !ok {
		t.Error("expected untouched entry to survive invalidate")
	}

	s.Clear(ctx)
	if _, ok := s.GetBars(ctx, "historical:A:1y"); ok {
		t.Error("expected clear to drop all entries")
	}
}

func TestMemoryStore_SweepEvictsExpired(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.SetQuote(ctx, "quote:OLD", &model.Quote{})
	*now = now.Add(3 * time.Minute)
	s.SetQuote(ctx, "quote:FRESH", &model.Quote{})
	*now = now.Add(3 * time.Minute) // OLD expired, FRESH not

	s.sweep()

	if s.Len() != 1 {
		t.Errorf("after sweep Len = %d, want 1", s.Len())
	}
	if _, ok := s.GetQuote(ctx, "quote:FRESH"); !ok {
		t.Error("sweep evicted a live entry")
	}
}

func TestMemoryStore_WrongTypeIsMiss(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.SetQuote(ctx, "historical:X:1y", &model.Quote{})
	if _, ok := s.GetBars(ctx, "historical:X:1y"); ok {
		t.Error("expected type mismatch to read as miss")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.SetQuote(ctx, "quote:RACE", &model.Quote{Price: float64(j)})
				s.GetQuote(ctx, "quote:RACE")
				s.SetBars(ctx, "historical:RACE:1y", []model.HistoricalBar{{Close: float64(j)}})
				s.GetBars(ctx, "historical:RACE:1y")
			}
		}()
	}
	wg.Wait()

	if _, ok := s.GetQuote(ctx, "quote:RACE"); !ok {
		t.Error("expected last write to be readable")
	}
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
