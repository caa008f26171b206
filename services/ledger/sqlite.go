package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Kenzousimba/IphoneVintedbot/internal/scraper"
	"github.com/Kenzousimba/IphoneVintedbot/services/cache"
)

const schema = `CREATE TABLE IF NOT EXISTS seen (
	source     TEXT NOT NULL,
	item_id    TEXT NOT NULL,
	url        TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL DEFAULT '',
	price      TEXT NOT NULL DEFAULT '',
	first_seen INTEGER NOT NULL,
	PRIMARY KEY (source, item_id)
)`

// pragmas applied on open. WAL and a busy timeout keep the single-writer
// file usable if an operator inspects it while the monitor runs.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// SQLiteLedger implements Ledger on an SQLite file. The INSERT OR IGNORE on
// the (source, item_id) primary key makes MarkSeen atomic with respect to
// the uniqueness constraint even under retried inserts.
type SQLiteLedger struct {
	db    *sql.DB
	cache cache.CacheService
}

// Option customises Open behaviour.
type Option func(*SQLiteLedger)

// WithCache installs a read-through cache in front of HasSeen. The database
// stays the source of truth; cache errors are ignored.
func WithCache(c cache.CacheService) Option {
	return func(l *SQLiteLedger) { l.cache = c }
}

// Open opens (and if needed creates) the seen ledger at path.
func Open(path string, opts ...Option) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open: %w", err)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("ledger: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: create schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: ping: %w", err)
	}

	l := &SQLiteLedger{db: db}
	for _, o := range opts {
		o(l)
	}
	return l, nil
}

// OpenMemory opens an in-memory ledger for testing. MaxOpenConns(1) ensures
// every query hits the same in-memory database. Closing is registered with
// t.Cleanup.
func OpenMemory(t testing.TB, opts ...Option) *SQLiteLedger {
	t.Helper()
	l, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("ledger.OpenMemory: %v", err)
	}
	l.db.SetMaxOpenConns(1)
	t.Cleanup(func() { l.Close() })
	return l
}

// HasSeen reports whether (source, itemID) was already recorded. A cache hit
// answers without touching the database; a database hit backfills the cache.
func (l *SQLiteLedger) HasSeen(ctx context.Context, source, itemID string) (bool, error) {
	if l.cache != nil {
		if _, err := l.cache.Get(cacheKey(source, itemID)); err == nil {
			return true, nil
		}
	}

	var one int
	err := l.db.QueryRowContext(ctx,
		"SELECT 1 FROM seen WHERE source = ? AND item_id = ?",
		source, itemID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ledger: lookup: %w", err)
	}

	l.cacheSeen(source, itemID)
	return true, nil
}

// MarkSeen records the listing. Existing (source, item_id) rows are left
// untouched.
func (l *SQLiteLedger) MarkSeen(ctx context.Context, source string, item scraper.Item) error {
	_, err := l.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO seen(source, item_id, url, title, price, first_seen) VALUES (?, ?, ?, ?, ?, ?)",
		source, item.ID, item.URL, item.Title, item.Price, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("ledger: insert: %w", err)
	}

	l.cacheSeen(source, item.ID)
	return nil
}

// Close closes the backing database.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

func (l *SQLiteLedger) cacheSeen(source, itemID string) {
	if l.cache == nil {
		return
	}
	// Best effort; a failed cache write only costs a future database lookup.
	_ = l.cache.Set(cacheKey(source, itemID), []byte("1"), 0)
}

func cacheKey(source, itemID string) string {
	return "seen:" + source + ":" + itemID
}
