package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"StockPulse/internal/model"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryStore is an in-process TTL cache. Expired entries read as
// absent immediately; a janitor goroutine sweeps them out periodically
// so memory does not grow without bound for symbols no longer queried.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates a store with the given entry TTL and starts
// the sweep janitor. Close stops the janitor.
func NewMemoryStore(ttl, sweepInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	s := &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go s.janitor(sweepInterval)
	return s
}

func (s *MemoryStore) get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (s *MemoryStore) set(key string, value any) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

func (s *MemoryStore) GetQuote(_ context.Context, key string) (*model.Quote, bool) {
	v, ok := s.get(key)
	if !ok {
		return nil, false
	}
	q, ok := v.(*model.Quote)
	if !ok {
		// Wrong type under this key is a programmer error; treat as miss.
		log.Printf("[WARN] cache: unexpected type under %s, treating as miss", key)
		return nil, false
	}
	return q, true
}

func (s *MemoryStore) SetQuote(_ context.Context, key string, q *model.Quote) {
	s.set(key, q)
}

func (s *MemoryStore) GetBars(_ context.Context, key string) ([]model.HistoricalBar, bool) {
	v, ok := s.get(key)
	if !ok {
		return nil, false
	}
	bars, ok := v.([]model.HistoricalBar)
	if !ok {
		log.Printf("[WARN] cache: unexpected type under %s, treating as miss", key)
		return nil, false
	}
	return bars, true
}

func (s *MemoryStore) SetBars(_ context.Context, key string, bars []model.HistoricalBar) {
	s.set(key, bars)
}

func (s *MemoryStore) GetIndicators(_ context.Context, key string) (*model.TechnicalIndicatorSet, bool) {
	v, ok := s.get(key)
	if !ok {
		return nil, false
	}
	ind, ok := v.(*model.TechnicalIndicatorSet)
	if !ok {
		log.Printf("[WARN] cache: unexpected type under %s, treating as miss", key)
		return nil, false
	}
	return ind, true
}

func (s *MemoryStore) SetIndicators(_ context.Context, key string, ind *model.TechnicalIndicatorSet) {
	s.set(key, ind)
}

func (s *MemoryStore) Invalidate(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Close stops the janitor. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes expired entries. Holds the write lock only for the
// deletes themselves.
func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len reports the number of entries currently held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
