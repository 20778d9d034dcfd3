package homepage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// CounterKind names the upstream a counter comes from.
type CounterKind string

const (
	CounterStars CounterKind = "github_stars"
	CounterViews CounterKind = "bilibili_views"
)

// Counter is the last known value of one third-party counter.
type Counter struct {
	Kind      CounterKind
	Key       string // owner/repo or bvid
	Value     int
	FetchedAt time.Time
}

// Store wraps a SQLite database holding the last fetched counter values, so
// cards show star and view counts right after a restart.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS counters (
    kind TEXT NOT NULL,
    key TEXT NOT NULL,
    value INTEGER NOT NULL,
    fetched_at TEXT NOT NULL,
    PRIMARY KEY (kind, key)
);
`)
	return err
}

// SaveCounter upserts a counter value.
func (s *Store) SaveCounter(c Counter) error {
	if c.FetchedAt.IsZero() {
		c.FetchedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO counters (kind, key, value, fetched_at) VALUES (?, ?, ?, ?)`,
		string(c.Kind), c.Key, c.Value, c.FetchedAt.UTC().Format(time.RFC3339))
	return err
}

// GetCounter returns one counter; sql.ErrNoRows when it was never fetched.
func (s *Store) GetCounter(kind CounterKind, key string) (Counter, error) {
	var value int
	var fetched string
	err := s.db.QueryRow(`SELECT value, fetched_at FROM counters WHERE kind = ? AND key = ?`, string(kind), key).
		Scan(&value, &fetched)
	if err != nil {
		return Counter{}, err
	}
	t, _ := time.Parse(time.RFC3339, fetched)
	return Counter{Kind: kind, Key: key, Value: value, FetchedAt: t}, nil
}

// ListCounters returns every stored counter of kind ordered by key.
func (s *Store) ListCounters(kind CounterKind) ([]Counter, error) {
	rows, err := s.db.Query(`SELECT key, value, fetched_at FROM counters WHERE kind = ? ORDER BY key`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []Counter
	for rows.Next() {
		var key, fetched string
		var value int
		if err := rows.Scan(&key, &value, &fetched); err != nil {
			return nil, err
		}
		t, _ := time.Parse(time.RFC3339, fetched)
		counters = append(counters, Counter{Kind: kind, Key: key, Value: value, FetchedAt: t})
	}
	return counters, rows.Err()
}

// DeleteCounter removes a counter.
func (s *Store) DeleteCounter(kind CounterKind, key string) error {
	_, err := s.db.Exec(`DELETE FROM counters WHERE kind = ? AND key = ?`, string(kind), key)
	return err
}
