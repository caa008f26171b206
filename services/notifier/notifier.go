package notifier

import "context"

// Notifier delivers plain-text alerts for newly confirmed listings.
// Delivery is best effort: the poll loop logs failures and moves on, it
// never retries within the same cycle.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
