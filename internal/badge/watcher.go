package badge

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	redisrepo "github.com/bookhaven/storefront/internal/repository/redis"
)

// CountSource supplies the current cart item count.
type CountSource interface {
	ItemCount(ctx context.Context) int
}

// Watcher keeps a cart-count consumer (the badge on the cart icon)
// reconciled with the shared cart slot. Because writers in other processes
// are only visible best-effort, the watcher re-reads the count from three
// independent triggers: a change notification on the cart pub/sub channel, an
// explicit Refresh call, and a fixed polling interval.
type Watcher struct {
	client   *redis.Client
	source   CountSource
	interval time.Duration
	onCount  func(count int)
	refresh  chan struct{}
	logger   *slog.Logger

	started bool
	last    int
}

// NewWatcher creates a badge watcher. onCount is invoked with the initial
// count when Run starts and again whenever a re-read observes a different
// count.
func NewWatcher(client *redis.Client, source CountSource, interval time.Duration, onCount func(int), logger *slog.Logger) *Watcher {
	return &Watcher{
		client:   client,
		source:   source,
		interval: interval,
		onCount:  onCount,
		refresh:  make(chan struct{}, 1),
		logger:   logger,
	}
}

// Refresh requests an immediate reconciliation, independent of the polling
// interval. It never blocks; a pending request coalesces with the next one.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Run blocks reconciling the count until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	sub := w.client.Subscribe(ctx, redisrepo.ChangeChannel)
	defer sub.Close()
	changes := sub.Channel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.reconcile(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			w.reconcile(ctx, "change notification")
		case <-w.refresh:
			w.reconcile(ctx, "refresh")
		case <-ticker.C:
			w.reconcile(ctx, "poll")
		}
	}
}

// reconcile re-reads the count and republishes it when it changed.
func (w *Watcher) reconcile(ctx context.Context, trigger string) {
	count := w.source.ItemCount(ctx)
	if w.started && count == w.last {
		return
	}
	w.started = true
	w.last = count

	w.logger.DebugContext(ctx, "cart badge count updated",
		slog.Int("count", count),
		slog.String("trigger", trigger),
	)

	if w.onCount != nil {
		w.onCount(count)
	}
}
