package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists observations to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			price          REAL,
			change         REAL,
			change_percent REAL,
			volume         REAL,
			market_cap     REAL,
			pe             REAL,
			high_52w       REAL,
			low_52w        REAL,
			source         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_sym_ts ON quote_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS indicator_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			price          REAL,
			rsi            REAL,
			macd           REAL,
			macd_signal    REAL,
			macd_histogram REAL,
			sma20          REAL,
			sma50          REAL,
			sma200         REAL,
			ema12          REAL,
			ema26          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ind_sym_ts ON indicator_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS fallback_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			operation TEXT NOT NULL,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fb_ts ON fallback_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(snap *QuoteSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := snap.Quote
	_, err := r.db.Exec(`INSERT INTO quote_snapshots
		(timestamp, symbol, price, change, change_percent, volume, market_cap, pe, high_52w, low_52w, source)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), q.Symbol, q.Price, q.Change, q.ChangePercent,
		q.Volume, q.MarketCap, q.PE, q.High52w, q.Low52w, q.Source,
	)
	return err
}

func (r *SQLiteRecorder) RecordIndicators(snap *IndicatorSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ind := snap.Indicators
	_, err := r.db.Exec(`INSERT INTO indicator_snapshots
		(timestamp, symbol, price, rsi, macd, macd_signal, macd_histogram, sma20, sma50, sma200, ema12, ema26)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), ind.Symbol, snap.Price, ind.RSI,
		ind.MACD.MACD, ind.MACD.Signal, ind.MACD.Histogram,
		ind.SMA20, ind.SMA50, ind.SMA200, ind.EMA12, ind.EMA26,
	)
	return err
}

func (r *SQLiteRecorder) RecordFallback(evt *FallbackEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fallback_events
		(timestamp, symbol, operation, error)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Operation, evt.Err,
	)
	return err
}

// RecentFallbackCount reports how many fallback events were recorded in
// the trailing window, for outage alerting.
func (r *SQLiteRecorder) RecentFallbackCount(window time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Now().Add(-window).Unix()
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM fallback_events WHERE timestamp >= ?`, since).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
