// Package history records which playlist items were played and when.
//
// Plays are stored in SQLite. Counts are cached in memory so rows can read
// them while rendering without touching the database.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/wavelist/internal/db"
)

const (
	appName    = "wavelist"
	dbFileName = "history.db"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("history: closed")

// Stats summarizes the plays of one source.
type Stats struct {
	Count int
	Last  time.Time
}

// Manager owns the history database.
type Manager struct {
	db     *sql.DB
	logger *log.Logger

	mu     sync.RWMutex
	stats  map[string]Stats
	closed bool
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens or creates the database at path. An empty path selects
// DefaultPath; ":memory:" keeps everything in memory.
func Open(path string, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, fmt.Errorf("history path: %w", err)
		}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and
	// serializes writes.
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	stats, err := loadStats(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("load history: %w", err)
	}

	logger.Debug("history opened", "path", path, "sources", len(stats))
	return &Manager{db: conn, logger: logger, stats: stats}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()
	return m.db.Close()
}

// Record stores one play of source at the given time.
func (m *Manager) Record(source string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if _, err := m.db.Exec(
		`INSERT INTO plays (source, played_at) VALUES (?, ?)`,
		source, at.UnixMilli(),
	); err != nil {
		return fmt.Errorf("record play %s: %w", source, err)
	}

	s := m.stats[source]
	s.Count++
	if at.After(s.Last) {
		s.Last = at
	}
	m.stats[source] = s
	return nil
}

// PlayStats returns the cached play count and last play time of source.
func (m *Manager) PlayStats(source string) (int, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.stats[source]
	return s.Count, s.Last
}

// Stats reads the stats of source from the database.
func (m *Manager) Stats(source string) (Stats, error) {
	var count int
	var last sql.NullInt64
	err := m.db.QueryRow(
		`SELECT COUNT(*), MAX(played_at) FROM plays WHERE source = ?`, source,
	).Scan(&count, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats %s: %w", source, err)
	}
	return Stats{Count: count, Last: db.UnixMilli(last)}, nil
}

func loadStats(conn *sql.DB) (map[string]Stats, error) {
	rows, err := conn.Query(`SELECT source, COUNT(*), MAX(played_at) FROM plays GROUP BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]Stats)
	for rows.Next() {
		var source string
		var count int
		var last sql.NullInt64
		if err := rows.Scan(&source, &count, &last); err != nil {
			return nil, err
		}
		stats[source] = Stats{Count: count, Last: db.UnixMilli(last)}
	}
	return stats, rows.Err()
}
