package registry

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore is the SQL-backed Store. Registration relies on
// ON CONFLICT DO NOTHING for idempotency; favorite/history writes use
// a WHERE EXISTS guard so an unregistered user id is a no-op rather
// than a foreign key violation.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store on an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Register(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddFavorite(ctx context.Context, userID, title string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_favorites (user_id, title)
		SELECT $1, $2 WHERE EXISTS (SELECT 1 FROM users WHERE id = $1)
		ON CONFLICT (user_id, title) DO NOTHING
	`, userID, title)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) Favorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title FROM user_favorites
		WHERE user_id = $1
		ORDER BY added_at, title
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (s *PostgresStore) RecordHistory(ctx context.Context, userID, query string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_history (user_id, query)
		SELECT $1, $2 WHERE EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, userID, query)
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query FROM user_history
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (s *PostgresStore) UserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user ids: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}
