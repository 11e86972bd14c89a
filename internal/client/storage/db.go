// Package storage opens the local SQLite database holding the transaction
// journal and client preferences, and applies the embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/migrations"
	"github.com/dmitrijs2005/landgrab/internal/client/repositories/journal"
	"github.com/dmitrijs2005/landgrab/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/landgrab/internal/dbx"
	"github.com/dmitrijs2005/landgrab/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DB bundles the opened database and its repositories.
type DB struct {
	SQL      *sql.DB
	Journal  journal.Repository
	Metadata metadata.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at dsn and migrates it.
// A file path gets its directory created first; ":memory:" and "file:"
// URIs are passed through.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		path, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, err
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{
		SQL:      db,
		Journal:  journal.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

// Reset removes every journal record and preference in one transaction.
func (d *DB) Reset(ctx context.Context) error {
	return dbx.WithTx(ctx, d.SQL, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := journal.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
}

func (d *DB) Close() error {
	return d.SQL.Close()
}
