package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/internal/journal"
)

// DefaultTailInterval is the journal polling interval of Tail
const DefaultTailInterval = time.Second

// Tailer publishes records that appear in a journal after it started.
// It lets a feed broadcast faults handled by other processes.
type Tailer struct {
	store    journal.Store
	hub      *Hub
	logger   *log.Logger
	interval time.Duration

	// cursor is the journal sequence number of the last published record.
	// Timestamps are taken before the insert and may commit out of order.
	cursor int64
}

// NewTailer creates a tailer starting at the current end of the journal
func NewTailer(ctx context.Context, store journal.Store, hub *Hub, interval time.Duration, logger *log.Logger) (*Tailer, error) {
	if interval <= 0 {
		interval = DefaultTailInterval
	}
	if logger == nil {
		logger = log.GetDefault()
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal position: %w", err)
	}

	return &Tailer{
		store:    store,
		hub:      hub,
		logger:   logger.WithName("tail"),
		interval: interval,
		cursor:   stats.LastSeq,
	}, nil
}

// Run polls until ctx is cancelled
func (t *Tailer) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := t.Poll(ctx); err != nil {
				t.logger.WarnWithErr("journal poll failed", err)
			}
		}
	}
}

// Poll publishes new records in insertion order and returns how many it sent
func (t *Tailer) Poll(ctx context.Context) (int, error) {
	records, err := t.store.Query(ctx, journal.Filter{AfterSeq: t.cursor})
	if err != nil {
		return 0, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Seq < records[j].Seq
	})

	for _, rec := range records {
		t.hub.Publish(rec)
		t.cursor = rec.Seq
	}

	return len(records), nil
}
