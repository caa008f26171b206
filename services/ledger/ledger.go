package ledger

import (
	"context"

	"github.com/Kenzousimba/IphoneVintedbot/internal/scraper"
)

// Ledger is the durable record of listings that have already been notified,
// keyed by (source, item id). It only grows: records are never updated or
// deleted.
type Ledger interface {
	// HasSeen reports whether the listing was already recorded for the
	// given search source. Pure lookup, no side effect.
	HasSeen(ctx context.Context, source, itemID string) (bool, error)

	// MarkSeen records the listing for the given search source. Idempotent:
	// marking an already-recorded pair is a no-op.
	MarkSeen(ctx context.Context, source string, item scraper.Item) error

	// Close releases the backing store.
	Close() error
}
