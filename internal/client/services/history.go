package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/chain"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/client/repositories/journal"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/dmitrijs2005/landgrab/internal/logging"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// JournalingWriter records every attempted write in the local journal and
// returns the wrapped writer's result unchanged. Writes refused for lack of
// a wallet are not recorded. A journal failure is logged and never fails
// the write.
type JournalingWriter struct {
	next chain.Writer
	repo journal.Repository
	log  logging.Logger
	now  func() time.Time
}

var _ chain.Writer = (*JournalingWriter)(nil)

func NewJournalingWriter(next chain.Writer, repo journal.Repository, log logging.Logger) *JournalingWriter {
	if log == nil {
		log = logging.Nop()
	}
	return &JournalingWriter{next: next, repo: repo, log: log, now: time.Now}
}

func (j *JournalingWriter) RegisterUser(ctx context.Context, username string) (models.TxHash, error) {
	hash, err := j.next.RegisterUser(ctx, username)
	j.record(ctx, "registerUser", []string{username}, hash, err)
	return hash, err
}

func (j *JournalingWriter) DeleteUser(ctx context.Context) (models.TxHash, error) {
	hash, err := j.next.DeleteUser(ctx)
	j.record(ctx, "deleteUser", nil, hash, err)
	return hash, err
}

func (j *JournalingWriter) ClaimParcel(ctx context.Context, words models.WordAddress) (models.TxHash, error) {
	hash, err := j.next.ClaimParcel(ctx, words)
	j.record(ctx, "claimLand", []string{string(words)}, hash, err)
	return hash, err
}

func (j *JournalingWriter) ProposeSwap(ctx context.Context, mine, theirs models.WordAddress) (models.TxHash, error) {
	hash, err := j.next.ProposeSwap(ctx, mine, theirs)
	j.record(ctx, "proposeSwap", []string{string(mine), string(theirs)}, hash, err)
	return hash, err
}

func (j *JournalingWriter) ApproveSwap(ctx context.Context, proposer ethcommon.Address) (models.TxHash, error) {
	hash, err := j.next.ApproveSwap(ctx, proposer)
	j.record(ctx, "approveSwap", []string{proposer.Hex()}, hash, err)
	return hash, err
}

func (j *JournalingWriter) record(ctx context.Context, kind string, args []string, hash models.TxHash, err error) {
	if errors.Is(err, common.ErrWalletNotConnected) {
		return
	}
	rec := models.TxRecord{
		Kind:      kind,
		Args:      args,
		Hash:      hash,
		Status:    models.TxConfirmed,
		CreatedAt: j.now(),
	}
	if err != nil {
		rec.Status = models.TxFailed
		rec.Error = err.Error()
	}
	if jerr := j.repo.Add(context.WithoutCancel(ctx), rec); jerr != nil {
		j.log.Warn(ctx, "journal write failed", "kind", kind, "error", jerr)
	}
}

// Resetter wipes all local data.
type Resetter interface {
	Reset(ctx context.Context) error
}

// HistoryService exposes the local journal.
type HistoryService interface {
	List(ctx context.Context, limit int) ([]models.TxRecord, error)
	Reset(ctx context.Context) error
}

type historyService struct {
	repo     journal.Repository
	resetter Resetter
}

func NewHistoryService(repo journal.Repository, resetter Resetter) HistoryService {
	return &historyService{repo: repo, resetter: resetter}
}

func (h *historyService) List(ctx context.Context, limit int) ([]models.TxRecord, error) {
	return h.repo.List(ctx, limit)
}

// Reset clears the journal and stored preferences.
func (h *historyService) Reset(ctx context.Context) error {
	return h.resetter.Reset(ctx)
}
