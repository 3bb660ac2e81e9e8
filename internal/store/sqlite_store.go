package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

const sqliteCollection = "games"

// SQLiteStore keeps game documents as JSON rows in a single SQLite database.
//
// Table:
//
//	documents(collection, id, data)  PRIMARY KEY (collection, id)
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serialises writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA journal_mode=WAL",
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, game domaingames.Game) (domaingames.Game, error) {
	game.ID = NewID()
	data, err := json.Marshal(game)
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("encode game: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)",
		sqliteCollection, game.ID, string(data))
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return game, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domaingames.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM documents WHERE collection = ? ORDER BY id", sqliteCollection)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	result := make([]domaingames.Game, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		game, err := decodeGame(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, game)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) FindByID(ctx context.Context, id string) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	return s.load(ctx, s.db.QueryRowContext, id)
}

func (s *SQLiteStore) UpdateByID(ctx context.Context, id string, patch domaingames.GamePatch) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	var updated domaingames.Game
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := s.load(ctx, tx.QueryRowContext, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(current)
		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("encode game: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE documents SET data = ? WHERE collection = ? AND id = ?",
			string(data), sqliteCollection, id)
		return err
	})
	if err != nil {
		return domaingames.Game{}, err
	}
	return updated, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id string) (domaingames.Game, error) {
	id, err := canonicalID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	var removed domaingames.Game
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		removed, err = s.load(ctx, tx.QueryRowContext, id)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"DELETE FROM documents WHERE collection = ? AND id = ?", sqliteCollection, id)
		return err
	})
	if err != nil {
		return domaingames.Game{}, err
	}
	return removed, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}

type queryRowFunc func(ctx context.Context, query string, args ...any) *sql.Row

func (s *SQLiteStore) load(ctx context.Context, queryRow queryRowFunc, id string) (domaingames.Game, error) {
	var raw string
	err := queryRow(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?", sqliteCollection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domaingames.Game{}, ErrNotFound
	}
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("load game: %w", err)
	}
	return decodeGame(raw)
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
