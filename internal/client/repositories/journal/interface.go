// Package journal keeps a local record of every write sent to the
// registries: what was attempted, the transaction hash, and the outcome.
package journal

import (
	"context"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
)

type Repository interface {
	Add(ctx context.Context, rec models.TxRecord) error
	// List returns at most limit records, newest first. A non-positive
	// limit returns everything.
	List(ctx context.Context, limit int) ([]models.TxRecord, error)
	Clear(ctx context.Context) error
}
