// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/movie-grid/pkg/types"
)

// Store wraps a SQLite database holding one exported result set.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path and ensures the schema.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating export directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			position INTEGER PRIMARY KEY,
			imdb_id TEXT NOT NULL,
			title TEXT,
			year TEXT,
			type TEXT,
			poster TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_imdb_id ON movies(imdb_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace swaps the stored set for movies in a single transaction.
// position is the 1-based acquisition order.
func (s *Store) Replace(ctx context.Context, movies []types.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("clearing movies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO movies (position, imdb_id, title, year, type, poster) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range movies {
		if _, err := stmt.ExecContext(ctx, i+1, m.IMDbID, m.Title, m.Year, m.Type, m.Poster); err != nil {
			return fmt.Errorf("inserting movie %s: %w", m.IMDbID, err)
		}
	}

	return tx.Commit()
}

// Movies returns the stored set in acquisition order.
func (s *Store) Movies(ctx context.Context) ([]types.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT imdb_id, title, year, type, poster FROM movies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	movies := []types.Movie{}
	for rows.Next() {
		var m types.Movie
		if err := rows.Scan(&m.IMDbID, &m.Title, &m.Year, &m.Type, &m.Poster); err != nil {
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		m.HasTitle = m.Title != ""
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// WriteSQLite replaces the movies table of the database at path.
func WriteSQLite(ctx context.Context, path string, movies []types.Movie) error {
	s, err := OpenStore(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Replace(ctx, movies)
}
