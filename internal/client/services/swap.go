package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/landgrab/internal/client/chain"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/dmitrijs2005/landgrab/internal/logging"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// SwapForm is the state of the propose form right after it opens.
type SwapForm struct {
	Parcels  []models.LandParcel
	Selected models.WordAddress
}

// SwapService proposes and approves parcel swaps.
//
// Propose does not check that the counterparty parcel exists or differs
// from the caller's own; the registry rejects such swaps. Approve names
// only the proposer.
type SwapService interface {
	Open(ctx context.Context) (SwapForm, error)
	Propose(ctx context.Context, mine, theirs string) (models.TxHash, error)
	Approve(ctx context.Context, proposer string) (models.TxHash, error)
}

type swapService struct {
	parcels ParcelService
	writer  chain.Writer
	log     logging.Logger

	mu sync.Mutex
}

func NewSwapService(parcels ParcelService, writer chain.Writer, log logging.Logger) SwapService {
	if log == nil {
		log = logging.Nop()
	}
	return &swapService{parcels: parcels, writer: writer, log: log.With("component", "swap")}
}

// Open loads the caller's parcels and preselects the first one.
func (s *swapService) Open(ctx context.Context) (SwapForm, error) {
	parcels, err := s.parcels.ListMine(ctx)
	if err != nil {
		return SwapForm{}, err
	}
	form := SwapForm{Parcels: parcels}
	if len(parcels) > 0 {
		form.Selected = parcels[0].Words
	}
	return form, nil
}

func (s *swapService) Propose(ctx context.Context, mine, theirs string) (models.TxHash, error) {
	myWords := models.ParseWordAddress(mine)
	theirWords := models.ParseWordAddress(theirs)
	if myWords == "" || theirWords == "" {
		return "", common.ErrIncompleteSwap
	}
	if !s.mu.TryLock() {
		return "", common.ErrBusy
	}
	defer s.mu.Unlock()

	hash, err := s.writer.ProposeSwap(ctx, myWords, theirWords)
	if err != nil {
		s.log.Warn(ctx, "swap proposal failed", "mine", myWords, "theirs", theirWords, "error", err)
		return "", err
	}
	s.log.Info(ctx, "swap proposed", "mine", myWords, "theirs", theirWords, "tx", hash)
	return hash, nil
}

func (s *swapService) Approve(ctx context.Context, proposer string) (models.TxHash, error) {
	addr, err := ParseProposer(proposer)
	if err != nil {
		return "", err
	}
	if !s.mu.TryLock() {
		return "", common.ErrBusy
	}
	defer s.mu.Unlock()

	hash, err := s.writer.ApproveSwap(ctx, addr)
	if err != nil {
		s.log.Warn(ctx, "swap approval failed", "proposer", addr.Hex(), "error", err)
		return "", err
	}
	s.log.Info(ctx, "swap approved", "proposer", addr.Hex(), "tx", hash)
	return hash, nil
}

// ParseProposer validates a hex account address typed by the user.
func ParseProposer(s string) (ethcommon.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ethcommon.Address{}, fmt.Errorf("please enter a proposer address: %w", common.ErrInvalidProposer)
	}
	if !ethcommon.IsHexAddress(s) {
		return ethcommon.Address{}, fmt.Errorf("%w: %q", common.ErrInvalidProposer, s)
	}
	return ethcommon.HexToAddress(s), nil
}
