package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mediaup/internal/dbx"
)

const (
	getQuery  = `SELECT value FROM chunk_sessions WHERE key = ?`
	listQuery = `SELECT key, value FROM chunk_sessions`
	delQuery  = `DELETE FROM chunk_sessions WHERE key = ?`
	saveQuery = `
		INSERT INTO chunk_sessions (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLiteRepository keeps chunk sessions in the chunk_sessions table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns nil, nil for an unknown key.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	switch err := r.db.QueryRowContext(ctx, getQuery, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, saveQuery, key, value); err != nil {
		return fmt.Errorf("kv save %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, delQuery, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("kv list: scan: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	return out, nil
}
