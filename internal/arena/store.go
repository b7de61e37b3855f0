package arena

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS matches (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	turns INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	winner INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS match_players (
	match_id TEXT NOT NULL REFERENCES matches(id),
	tag INTEGER NOT NULL,
	name TEXT NOT NULL,
	final_rank INTEGER NOT NULL,
	territory INTEGER NOT NULL,
	strength INTEGER NOT NULL,
	dropped INTEGER NOT NULL,
	PRIMARY KEY (match_id, tag)
)`,
}

// Store keeps match results in a sqlite database.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens or creates the database at path, creating its directory when needed.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	logger = logger.With().Str("component", "Store").Logger()
	logger.Info().Str("path", path).Msg("Database initialized")
	return &Store{db: db, logger: logger}, nil
}

// SaveResult writes a match and its players in one transaction.
func (s *Store) SaveResult(ctx context.Context, r *Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, started_at, ended_at, width, height, turns, seed, winner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Started.UnixMilli(), r.Ended.UnixMilli(), r.Width, r.Height, r.Turns, r.Seed, r.Winner,
	)
	if err != nil {
		return fmt.Errorf("saving match %s: %w", r.ID, err)
	}

	for _, p := range r.Players {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO match_players (match_id, tag, name, final_rank, territory, strength, dropped)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, p.Tag, p.Name, p.Rank, p.Territory, p.Strength, p.Dropped,
		)
		if err != nil {
			return fmt.Errorf("saving player %d of match %s: %w", p.Tag, r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing match %s: %w", r.ID, err)
	}
	s.logger.Debug().Str("match_id", r.ID).Msg("Match saved")
	return nil
}

// RecentResults returns up to limit matches, most recently finished first.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]*Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, width, height, turns, seed, winner
		FROM matches ORDER BY ended_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}

	var results []*Result
	for rows.Next() {
		var r Result
		var started, ended int64
		if err := rows.Scan(&r.ID, &started, &ended, &r.Width, &r.Height, &r.Turns, &r.Seed, &r.Winner); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("reading match: %w", err)
		}
		r.Started, r.Ended = time.UnixMilli(started), time.UnixMilli(ended)
		results = append(results, &r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Players, err = s.players(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *Store) players(ctx context.Context, matchID string) ([]PlayerResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, name, final_rank, territory, strength, dropped
		FROM match_players WHERE match_id = ? ORDER BY tag`, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying players of match %s: %w", matchID, err)
	}
	defer rows.Close()

	var players []PlayerResult
	for rows.Next() {
		var p PlayerResult
		if err := rows.Scan(&p.Tag, &p.Name, &p.Rank, &p.Territory, &p.Strength, &p.Dropped); err != nil {
			return nil, fmt.Errorf("reading player of match %s: %w", matchID, err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
