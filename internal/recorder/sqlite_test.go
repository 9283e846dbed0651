package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_RecentFallbackCount(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	for i := 0; i < 3; i++ {
		evt := &FallbackEvent{Symbol: "TCS.NSE", Operation: "quote", Err: "connection refused"}
		if err := r.RecordFallback(evt); err != nil {
			t.Fatalf("record fallback: %v", err)
		}
	}

	n, err := r.RecentFallbackCount(time.Hour)
	if err != nil {
		t.Fatalf("recent fallback count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}
