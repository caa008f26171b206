package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kenzousimba/IphoneVintedbot/internal/scraper"
	"github.com/Kenzousimba/IphoneVintedbot/internal/search"
	"github.com/Kenzousimba/IphoneVintedbot/logger"
	"github.com/Kenzousimba/IphoneVintedbot/services/ledger"
	"github.com/Kenzousimba/IphoneVintedbot/services/notifier"
	"github.com/Kenzousimba/IphoneVintedbot/services/publisher"
)

// Fetcher retrieves candidate listings for a search URL.
type Fetcher interface {
	Fetch(url string) ([]scraper.Item, error)
}

// Matcher decides whether a listing title is a genuine target listing.
type Matcher interface {
	Matches(title string) bool
}

// finding is the payload published for downstream consumers.
type finding struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Price  string `json:"price,omitempty"`
	URL    string `json:"url"`
}

// Worker runs the poll loop: one sequential pass over all search queries,
// then a fixed sleep, forever until the context is cancelled.
type Worker struct {
	ctx        context.Context
	queries    []search.Query
	fetcher    Fetcher
	matcher    Matcher
	ledger     ledger.Ledger
	notifier   notifier.Notifier
	publisher  publisher.Publisher // optional, may be nil
	log        *logger.Logger
	scanPeriod time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	queries []search.Query,
	fetcher Fetcher,
	matcher Matcher,
	ldg ledger.Ledger,
	ntf notifier.Notifier,
	pub publisher.Publisher,
	scanPeriod time.Duration,
) *Worker {
	return &Worker{
		ctx:        ctx,
		queries:    queries,
		fetcher:    fetcher,
		matcher:    matcher,
		ledger:     ldg,
		notifier:   ntf,
		publisher:  pub,
		log:        logger.ForComponent("worker"),
		scanPeriod: scanPeriod,
	}
}

// Start runs scan cycles until the context is cancelled. The first scan
// starts immediately; subsequent ones are separated by the scan period.
func (w *Worker) Start() error {
	ticker := time.NewTicker(w.scanPeriod)
	defer ticker.Stop()

	for {
		start := time.Now()
		w.RunOnce()
		w.log.Debug().
			Dur("elapsed", time.Since(start)).
			Int("queries", len(w.queries)).
			Msg("Scan cycle finished")

		select {
		case <-w.ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single full pass over all queries. A failed query is
// logged and skipped; it never aborts the cycle.
func (w *Worker) RunOnce() {
	for _, q := range w.queries {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		w.scanQuery(q)
	}
}

// scanQuery fetches one search page and walks its candidates through the
// classify → dedup → notify pipeline.
func (w *Worker) scanQuery(q search.Query) {
	items, err := w.fetcher.Fetch(q.URL)
	if err != nil {
		w.log.Warn().Err(err).Str("query", q.Key).Msg("Scan failed, retrying next cycle")
		return
	}

	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if !w.matcher.Matches(item.Title) {
			continue
		}

		seen, err := w.ledger.HasSeen(w.ctx, q.Key, item.ID)
		if err != nil {
			w.log.Error().Err(err).Str("query", q.Key).Str("item_id", item.ID).Msg("Ledger lookup failed")
			continue
		}
		if seen {
			continue
		}

		// Mark-seen before notify: a flaky notifier may lose an alert but
		// can never repeat one.
		if err := w.ledger.MarkSeen(w.ctx, q.Key, item); err != nil {
			w.log.Error().Err(err).Str("query", q.Key).Str("item_id", item.ID).Msg("Ledger insert failed")
			continue
		}

		w.log.Info().
			Str("query", q.Key).
			Str("item_id", item.ID).
			Str("title", item.Title).
			Str("price", item.Price).
			Msg("New listing found")

		if err := w.notifier.Notify(w.ctx, formatAlert(q.Key, item)); err != nil {
			w.log.Error().Err(err).Str("query", q.Key).Str("item_id", item.ID).Msg("Notification failed")
		}

		w.publishFinding(q.Key, item)
	}
}

// publishFinding fans the confirmed item out to the optional stream.
func (w *Worker) publishFinding(source string, item scraper.Item) {
	if w.publisher == nil {
		return
	}

	payload, err := json.Marshal(finding{
		Source: source,
		ID:     item.ID,
		Title:  item.Title,
		Price:  item.Price,
		URL:    item.URL,
	})
	if err != nil {
		w.log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to encode finding")
		return
	}

	if err := w.publisher.Publish(payload); err != nil {
		w.log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to publish finding")
	}
}

func formatAlert(source string, item scraper.Item) string {
	return fmt.Sprintf("🆕 %s\n%s\n%s\n%s", source, item.Title, item.Price, item.URL)
}
