package models

import "time"

// TxHash is the hex hash of a submitted transaction.
type TxHash string

// TxStatus is the outcome of a write as recorded in the local journal.
type TxStatus string

const (
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// TxRecord is one entry of the local transaction journal. The journal is an
// audit trail; the registries remain the source of truth.
type TxRecord struct {
	ID        string
	Kind      string
	Args      []string
	Hash      TxHash
	Status    TxStatus
	Error     string
	CreatedAt time.Time
}
