package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with the fold() SQL function registered
const driverName = "sqlite3_ecsfault"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// SQLite's lower() and LIKE fold ASCII only
			return conn.RegisterFunc("fold", foldCase, true)
		},
	})
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/faults.db",
	}
}

func newID() string {
	return uuid.NewString()
}

// NewSQLiteStore creates a new SQLite-based fault journal
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(driverName, cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS faults (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp_ns INTEGER NOT NULL,
		source TEXT NOT NULL,
		category TEXT NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		file TEXT NOT NULL,
		function TEXT NOT NULL,
		line INTEGER NOT NULL,
		diagnostic TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_faults_timestamp ON faults(timestamp_ns DESC);
	CREATE INDEX IF NOT EXISTS idx_faults_source ON faults(source);
	CREATE INDEX IF NOT EXISTS idx_faults_category ON faults(category);
	`

	_, err := s.db.Exec(schema)
	return err
}

const selectColumns = `SELECT seq, id, timestamp_ns, source, category, severity, message, file, function, line, diagnostic FROM faults`

// Record stores a fault record
func (s *SQLiteStore) Record(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(rec)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO faults (id, timestamp_ns, source, category, severity, message, file, function, line, diagnostic)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Timestamp.UnixNano(), rec.Source, rec.Category, rec.Severity,
		rec.Message, rec.File, rec.Function, rec.Line, rec.Diagnostic)
	if err != nil {
		return fmt.Errorf("failed to insert fault record: %w", err)
	}

	// AUTOINCREMENT never reuses a sequence number, even after Prune
	rec.Seq, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read fault sequence: %w", err)
	}
	return nil
}

// Get retrieves a single record by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fault record: %w", err)
	}
	return rec, nil
}

// Query retrieves records based on filter criteria
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectColumns + ` WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp_ns >= ?"
		args = append(args, filter.Since.UnixNano())
	}
	if !filter.Until.IsZero() {
		query += " AND timestamp_ns <= ?"
		args = append(args, filter.Until.UnixNano())
	}
	if filter.AfterSeq > 0 {
		query += " AND seq > ?"
		args = append(args, filter.AfterSeq)
	}
	if filter.Contains != "" {
		query += ` AND fold(message) LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(foldCase(filter.Contains))+"%")
	}

	query += " ORDER BY timestamp_ns DESC, seq DESC"

	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fault records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fault record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Stats returns journal statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		ByCategory: make(map[string]int64),
		BySource:   make(map[string]int64),
	}

	var last sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), MAX(timestamp_ns) FROM faults`).Scan(&stats.Total, &last); err != nil {
		return nil, fmt.Errorf("failed to count fault records: %w", err)
	}
	// sqlite_sequence keeps the high-water mark after the newest rows are pruned
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM sqlite_sequence WHERE name = 'faults'`).Scan(&stats.LastSeq); err != nil {
		return nil, fmt.Errorf("failed to read fault sequence: %w", err)
	}
	if last.Valid {
		stats.Last = time.Unix(0, last.Int64).UTC()
	}

	if err := s.countBy(ctx, "category", stats.ByCategory); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, "source", stats.BySource); err != nil {
		return nil, err
	}

	return stats, nil
}

// countBy fills counts grouped by a fixed column name
func (s *SQLiteStore) countBy(ctx context.Context, column string, counts map[string]int64) error {
	rows, err := s.db.QueryContext(ctx, `SELECT `+column+`, COUNT(*) FROM faults GROUP BY `+column)
	if err != nil {
		return fmt.Errorf("failed to group fault records by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		counts[key] = count
	}
	return rows.Err()
}

// Prune removes records older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM faults WHERE timestamp_ns < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune fault records: %w", err)
	}
	return result.RowsAffected()
}

// Vacuum rebuilds the database file, releasing pages freed by Prune
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `VACUUM`)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var ts int64
	if err := row.Scan(&rec.Seq, &rec.ID, &ts, &rec.Source, &rec.Category, &rec.Severity,
		&rec.Message, &rec.File, &rec.Function, &rec.Line, &rec.Diagnostic); err != nil {
		return nil, err
	}
	rec.Timestamp = time.Unix(0, ts).UTC()
	return &rec, nil
}

// escapeLike escapes LIKE wildcards in a user supplied pattern
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
