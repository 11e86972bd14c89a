package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/landgrab/internal/dbx"
)

const (
	selectPreference = `SELECT value FROM metadata WHERE key = ?`
	upsertPreference = `INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deletePreferences = `DELETE FROM metadata`
)

// SQLiteRepository keeps preferences in the metadata table. It accepts a
// dbx.DBTX so a reset can wipe preferences inside the same transaction as
// the journal.
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	switch err := r.db.QueryRowContext(ctx, selectPreference, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read preference %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any earlier value.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, upsertPreference, key, value); err != nil {
		return fmt.Errorf("store preference %q: %w", key, err)
	}
	return nil
}

// Clear forgets every stored preference.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deletePreferences); err != nil {
		return fmt.Errorf("forget preferences: %w", err)
	}
	return nil
}
