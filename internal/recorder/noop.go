package recorder

import "time"

// NoopRecorder is a no-op implementation used when SQLite is not
// configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ *QuoteSnapshot) error          { return nil }
func (n *NoopRecorder) RecordIndicators(_ *IndicatorSnapshot) error { return nil }
func (n *NoopRecorder) RecordFallback(_ *FallbackEvent) error       { return nil }
func (n *NoopRecorder) Close() error                                { return nil }

func (n *NoopRecorder) RecentFallbackCount(_ time.Duration) (int, error) { return 0, nil }
