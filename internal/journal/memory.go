package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation for tests and short-lived tools
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
	seq     int64
}

// NewMemoryStore creates a new in-memory fault journal
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make([]*Record, 0),
	}
}

// Record stores a copy of a fault record
func (s *MemoryStore) Record(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(rec)
	for _, existing := range s.records {
		if existing.ID == rec.ID {
			return fmt.Errorf("failed to insert fault record: duplicate id %s", rec.ID)
		}
	}

	s.seq++
	rec.Seq = s.seq
	stored := *rec
	s.records = append(s.records, &stored)
	return nil
}

// Get retrieves a single record by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			out := *rec
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Query retrieves records based on filter criteria
func (s *MemoryStore) Query(ctx context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contains := foldCase(filter.Contains)

	var results []*Record
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if filter.Source != "" && rec.Source != filter.Source {
			continue
		}
		if filter.Category != "" && rec.Category != filter.Category {
			continue
		}
		if !filter.Since.IsZero() && rec.Timestamp.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && rec.Timestamp.After(filter.Until) {
			continue
		}
		if filter.AfterSeq > 0 && rec.Seq <= filter.AfterSeq {
			continue
		}
		if contains != "" && !strings.Contains(foldCase(rec.Message), contains) {
			continue
		}
		out := *rec
		results = append(results, &out)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return nil, nil
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}

	return results, nil
}

// Stats returns journal statistics
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		Total:      int64(len(s.records)),
		LastSeq:    s.seq,
		ByCategory: make(map[string]int64),
		BySource:   make(map[string]int64),
	}
	for _, rec := range s.records {
		stats.ByCategory[rec.Category]++
		stats.BySource[rec.Source]++
		if rec.Timestamp.After(stats.Last) {
			stats.Last = rec.Timestamp
		}
	}
	return stats, nil
}

// Prune removes records older than the specified duration
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var deleted int64

	kept := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept

	return deleted, nil
}

// Vacuum is a no-op for the memory store
func (s *MemoryStore) Vacuum(ctx context.Context) error {
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
