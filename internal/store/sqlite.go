package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/statistics"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps the roster and history in a SQLite database
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (and creates if missing) the database at path and applies
// any pending migrations.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &SQLiteStore{db: db, logger: logger.WithPrefix("store")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate applies embedded *.sql files in lexical order, recording each in
// _migrations so it runs once.
func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("store: create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("store: list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("store: query _migrations: %w", err)
		}

		text, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("store: read %s: %w", f, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(text)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("store: commit %s: %w", f, err)
		}
		s.logger.Info("Applied migration", "migration", f)
	}
	return nil
}

func (s *SQLiteStore) SaveRoster(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM roster`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store: clear roster: %w", err)
	}
	for i, name := range names {
		if _, err := tx.ExecContext(ctx, `INSERT INTO roster(position, name) VALUES (?, ?)`, i, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: save roster: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadRoster(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM roster ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("store: load roster: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoRoster
	}
	return names, nil
}

func (s *SQLiteStore) AppendPenalties(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO penalties (session_id, game, player, amount, unit, action, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.SessionID, string(e.Game), e.Player, e.Amount, string(e.Unit), e.Action, e.At); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: append penalty: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Totals(ctx context.Context) ([]statistics.Tally, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT player, unit, action, SUM(amount)
        FROM penalties
        GROUP BY player, unit, action`)
	if err != nil {
		return nil, fmt.Errorf("store: totals: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var unit string
		if err := rows.Scan(&e.Player, &unit, &e.Action, &e.Amount); err != nil {
			return nil, err
		}
		e.Unit = deck.Unit(unit)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaderboard(entries), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
