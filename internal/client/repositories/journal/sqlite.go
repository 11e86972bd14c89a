package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/dbx"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add stores rec. An empty ID is replaced with a fresh UUID and a zero
// CreatedAt with the current time.
func (r *SQLiteRepository) Add(ctx context.Context, rec models.TxRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	args := rec.Args
	if args == nil {
		args = []string{}
	}
	encoded, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode journal args: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO journal (id, kind, args, tx_hash, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, string(encoded), string(rec.Hash), string(rec.Status), rec.Error, rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("add journal record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.TxRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, args, tx_hash, status, error, created_at
		FROM journal
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var out []models.TxRecord
	for rows.Next() {
		var (
			rec       models.TxRecord
			args      string
			hash      string
			status    string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Kind, &args, &hash, &status, &rec.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if err := json.Unmarshal([]byte(args), &rec.Args); err != nil {
			return nil, fmt.Errorf("decode journal args for %s: %w", rec.ID, err)
		}
		rec.Hash = models.TxHash(hash)
		rec.Status = models.TxStatus(status)
		rec.CreatedAt = time.Unix(0, createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal`); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}
