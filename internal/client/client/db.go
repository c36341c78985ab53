package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/mediaup/internal/client/migrations"
	"github.com/dmitrijs2005/mediaup/internal/client/repositories/kv"
)

// sqlitePragmas lets a second process (or the REPL and a background run)
// wait on a locked session file instead of failing immediately.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Repositories bundles the local stores opened from one SQLite file.
type Repositories struct {
	Sessions kv.Store
	DB       *sql.DB
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded client migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session store: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite file at path and brings its schema up to
// date.
func InitDatabase(ctx context.Context, path string) (*Repositories, error) {
	db, err := sql.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open session store %s: %w", path, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Sessions: kv.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
