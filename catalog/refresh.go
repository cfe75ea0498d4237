package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aletube/catalogd/model"
)

// Refresher owns the channel-summary polling policy. Consumers read
// Latest instead of choosing their own refresh cadence.
type Refresher struct {
	resolver  ChannelResolver
	channelID model.ChannelID
	interval  time.Duration
	logger    *slog.Logger

	mu      sync.RWMutex
	latest  model.ChannelSummary
	lastErr error
}

func NewRefresher(resolver ChannelResolver, channelID model.ChannelID, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		resolver:  resolver,
		channelID: channelID,
		interval:  interval,
		logger:    logger,
	}
}

// Run refreshes once immediately, then on every tick until ctx ends.
func (r *Refresher) Run(ctx context.Context) {
	r.logger.Info("started channel summary refresher",
		slog.String("channel", string(r.channelID)),
		slog.Duration("interval", r.interval))

	r.refresh(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	summary, _, err := r.resolver.Resolve(ctx, r.channelID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
	if err != nil {
		// Keep the previous snapshot. Stale real data beats fabricated
		// placeholders; the error travels alongside it.
		r.logger.Error("failed to refresh channel summary", slog.String("err", err.Error()))
		return
	}
	r.latest = summary
}

// Latest returns the most recent snapshot and the outcome of the last
// refresh attempt. A zero FetchedAt means no refresh has succeeded yet.
func (r *Refresher) Latest() (model.ChannelSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.lastErr
}
