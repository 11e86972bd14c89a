package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/metrics"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Writer is the write side of the registries. Every method returns once the
// transaction is mined.
type Writer interface {
	RegisterUser(ctx context.Context, username string) (models.TxHash, error)
	DeleteUser(ctx context.Context) (models.TxHash, error)
	ClaimParcel(ctx context.Context, words models.WordAddress) (models.TxHash, error)
	ProposeSwap(ctx context.Context, mine, theirs models.WordAddress) (models.TxHash, error)
	ApproveSwap(ctx context.Context, proposer ethcommon.Address) (models.TxHash, error)
}

// Signer supplies transaction options for the connected wallet, or
// common.ErrWalletNotConnected.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Confirmer blocks until tx is mined.
type Confirmer func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

type ChainWriter struct {
	contracts *Contracts
	signer    Signer
	confirm   Confirmer
	metrics   *metrics.Metrics
}

func NewWriter(c *Contracts, signer Signer, confirm Confirmer, m *metrics.Metrics) *ChainWriter {
	return &ChainWriter{contracts: c, signer: signer, confirm: confirm, metrics: m}
}

func (w *ChainWriter) RegisterUser(ctx context.Context, username string) (models.TxHash, error) {
	return w.transact(ctx, w.contracts.Users, "registerUser", username)
}

func (w *ChainWriter) DeleteUser(ctx context.Context) (models.TxHash, error) {
	return w.transact(ctx, w.contracts.Users, "deleteUser")
}

func (w *ChainWriter) ClaimParcel(ctx context.Context, words models.WordAddress) (models.TxHash, error) {
	return w.transact(ctx, w.contracts.Lands, "claimLand", string(words))
}

func (w *ChainWriter) ProposeSwap(ctx context.Context, mine, theirs models.WordAddress) (models.TxHash, error) {
	return w.transact(ctx, w.contracts.Swaps, "proposeSwap", string(mine), string(theirs))
}

func (w *ChainWriter) ApproveSwap(ctx context.Context, proposer ethcommon.Address) (models.TxHash, error) {
	return w.transact(ctx, w.contracts.Swaps, "approveSwap", proposer)
}

// transact submits, waits for the receipt and checks its status. The hash
// is returned alongside a confirmation error so callers can report it.
func (w *ChainWriter) transact(ctx context.Context, c Contract, method string, params ...any) (models.TxHash, error) {
	signed, err := w.signer.TransactOpts(ctx)
	if err != nil {
		return "", err
	}
	opts := *signed
	opts.Context = ctx
	opts.GasLimit = GasLimit

	tx, err := c.Transact(&opts, method, params...)
	if err != nil {
		w.metrics.ObserveChainCall(method, err)
		return "", common.NewTxError(method, "", err)
	}
	hash := tx.Hash().Hex()

	start := time.Now()
	receipt, err := w.confirm(ctx, tx)
	if err == nil && receipt.Status != types.ReceiptStatusSuccessful {
		err = fmt.Errorf("transaction %s reverted in block %v", hash, receipt.BlockNumber)
	}
	w.metrics.ObserveChainCall(method, err)
	if err != nil {
		return models.TxHash(hash), common.NewTxError(method, hash, err)
	}
	w.metrics.ObserveConfirmation(method, time.Since(start))

	return models.TxHash(hash), nil
}
