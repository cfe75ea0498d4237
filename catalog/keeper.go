package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aletube/catalogd/model"
)

// Keeper maintains the current catalog for one channel, re-fetching on
// an interval so every consumer shares a single refresh policy. During
// the first load records are published incrementally as the session
// streams them; later refreshes swap the catalog in one piece so
// consumers never see it shrink mid-fetch.
type Keeper struct {
	service   *Service
	channelID model.ChannelID
	interval  time.Duration
	logger    *slog.Logger

	mu      sync.RWMutex
	records []model.VideoRecord
	loaded  bool
	partial bool
	lastErr error
}

func NewKeeper(service *Service, channelID model.ChannelID, interval time.Duration, logger *slog.Logger) *Keeper {
	return &Keeper{
		service:   service,
		channelID: channelID,
		interval:  interval,
		logger:    logger,
	}
}

// Run loads the catalog once immediately, then on every tick until ctx
// ends.
func (k *Keeper) Run(ctx context.Context) {
	k.logger.Info("started catalog keeper",
		slog.String("channel", string(k.channelID)),
		slog.Duration("interval", k.interval))

	k.load(ctx)
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.load(ctx)
		}
	}
}

func (k *Keeper) load(ctx context.Context) {
	session, err := k.service.Fetch(ctx, k.channelID)
	if err != nil {
		k.mu.Lock()
		k.lastErr = err
		k.mu.Unlock()
		k.logger.Error("catalog load failed", slog.String("err", err.Error()))
		return
	}

	k.mu.Lock()
	if !k.loaded {
		k.records = nil
	}
	k.mu.Unlock()

	for record := range session.Updates() {
		k.mu.Lock()
		if !k.loaded {
			k.records = append(k.records, record)
		}
		k.mu.Unlock()
	}
	<-session.Done()

	err = session.Err()
	records := session.Records()

	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastErr = err
	if err != nil && !isPartial(err) {
		// Nothing usable came back; keep what we already serve.
		return
	}
	k.records = records
	k.loaded = true
	k.partial = err != nil
}

// Records returns a point-in-time copy of the current catalog.
func (k *Keeper) Records() []model.VideoRecord {
	k.mu.RLock()
	defer k.mu.RUnlock()
	records := make([]model.VideoRecord, len(k.records))
	copy(records, k.records)
	return records
}

// Status reports whether the current catalog is known to be incomplete
// and the outcome of the last load.
func (k *Keeper) Status() (bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.partial, k.lastErr
}

func isPartial(err error) bool {
	var pageErr *PageError
	return errors.As(err, &pageErr)
}
