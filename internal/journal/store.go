package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msto63/ecsfault/pkg/core/config"
)

// ErrNotFound is returned when a record ID is not in the journal
var ErrNotFound = errors.New("fault record not found")

// Store defines the interface for fault persistence
type Store interface {
	Record(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	// Query returns matching records, newest first
	Query(ctx context.Context, filter Filter) ([]*Record, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	// Vacuum releases space freed by Prune
	Vacuum(ctx context.Context) error
	Close() error
}

// Open creates the store selected by cfg.Driver
func Open(cfg config.JournalConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			path = DefaultSQLiteConfig().Path
		}
		return NewSQLiteStore(SQLiteConfig{Path: path})
	default:
		return nil, fmt.Errorf("unknown journal driver: %q", cfg.Driver)
	}
}

// foldCase is the case folding applied to both sides of a Contains match
func foldCase(s string) string {
	return strings.ToLower(s)
}

// prepare fills in ID and timestamp of a record if missing
func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
}
