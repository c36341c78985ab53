package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/dbx"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert adds u unless its storage path is already recorded. The returned
// bool is false for a replay.
func (r *PostgresRepository) Insert(ctx context.Context, u *Upload) (bool, error) {
	query := `
		INSERT INTO uploads (storage_path, user_id, filename, file_size, mime_type, width, height)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (storage_path) DO NOTHING;
	`
	res, err := r.db.ExecContext(ctx, query,
		u.StoragePath, u.UserID, u.Filename, u.FileSize, u.MimeType, u.Width, u.Height)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// GetByStoragePath returns common.ErrorNotFound when path is not recorded.
func (r *PostgresRepository) GetByStoragePath(ctx context.Context, path string) (*Upload, error) {
	query := `SELECT storage_path, user_id, filename, file_size, mime_type, width, height, confirmed_at
		FROM uploads WHERE storage_path=$1`

	u := &Upload{}
	err := r.db.QueryRowContext(ctx, query, path).Scan(
		&u.StoragePath, &u.UserID, &u.Filename, &u.FileSize, &u.MimeType, &u.Width, &u.Height, &u.ConfirmedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select upload: %w", err)
	}
	return u, nil
}
