package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/coastwatch/tidecast/internal/models"
)

// SQLite is the persistent cache backend, one row per station key. Rows
// expire on read; a background sweeper is not needed at this scale.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration

	Now func() time.Time
}

func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging cache database: %w", err)
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS tide_cache (
  station_key TEXT PRIMARY KEY,
  payload     TEXT NOT NULL,
  source      TEXT NOT NULL,
  saved_at    INTEGER NOT NULL
);
	`); err != nil {
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &SQLite{db: db, ttl: ttl, Now: time.Now}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (*Entry, bool) {
	var payload, source string
	var savedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, source, saved_at FROM tide_cache WHERE station_key = ?`, key).
		Scan(&payload, &source, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return nil, false
	}

	saved := time.Unix(savedAt, 0)
	if s.Now().Sub(saved) > s.ttl {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM tide_cache WHERE station_key = ?`, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Evicting expired cache entry failed")
		}
		return nil, false
	}

	var events []models.TideEvent
	if err := json.Unmarshal([]byte(payload), &events); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache entry undecodable, treating as miss")
		return nil, false
	}

	return &Entry{Events: events, Source: source, SavedAt: saved}, true
}

func (s *SQLite) Set(ctx context.Context, key string, events []models.TideEvent, source string) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO tide_cache (station_key, payload, source, saved_at) VALUES (?, ?, ?, ?)
ON CONFLICT(station_key) DO UPDATE SET payload = excluded.payload,
  source = excluded.source, saved_at = excluded.saved_at
	`, key, string(payload), source, s.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
