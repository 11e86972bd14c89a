package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/landgrab/internal/client/chain"
	"github.com/dmitrijs2005/landgrab/internal/client/geocoder"
	"github.com/dmitrijs2005/landgrab/internal/client/locator"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/dmitrijs2005/landgrab/internal/logging"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Wallet exposes the connected account, or common.ErrWalletNotConnected.
type Wallet interface {
	Address() (ethcommon.Address, error)
}

// ClaimService runs the claim workflow of one session.
//
// Contract:
//   - Locate: position the device and fill the word field from it.
//   - Claim: claim the parcel in the word field, registering the user first
//     when the registry reports them inactive.
//   - ClaimHere: Locate followed by Claim as one run of the workflow.
//   - SetWords / Snapshot: read and write the session state.
//
// Only one run is active at a time; triggers while another run is in
// progress fail with common.ErrBusy and change nothing. Every run ends in
// Idle with Loading cleared, whatever the outcome.
type ClaimService interface {
	Locate(ctx context.Context) (models.WordAddress, error)
	Claim(ctx context.Context) (models.TxHash, error)
	ClaimHere(ctx context.Context) (models.TxHash, error)
	SetWords(words string) error
	Snapshot() Snapshot
}

type claimService struct {
	locator  locator.Locator
	geocoder geocoder.Geocoder
	reader   chain.Reader
	writer   chain.Writer
	wallet   Wallet
	names    UsernameSource
	log      logging.Logger

	mu    sync.Mutex
	state Snapshot
}

func NewClaimService(
	loc locator.Locator,
	geo geocoder.Geocoder,
	reader chain.Reader,
	writer chain.Writer,
	wallet Wallet,
	names UsernameSource,
	log logging.Logger,
) ClaimService {
	if log == nil {
		log = logging.Nop()
	}
	return &claimService{
		locator:  loc,
		geocoder: geo,
		reader:   reader,
		writer:   writer,
		wallet:   wallet,
		names:    names,
		log:      log.With("component", "claim"),
	}
}

func (s *claimService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *claimService) SetWords(words string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.State != Idle {
		return common.ErrBusy
	}
	s.state.Words = models.ParseWordAddress(words)
	return nil
}

// begin moves Idle to first, or reports ErrBusy.
func (s *claimService) begin(first State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.State != Idle {
		return common.ErrBusy
	}
	s.state.State = first
	s.state.Loading = true
	s.state.LastError = ""
	s.state.Registered = false
	return nil
}

func (s *claimService) enter(st State) {
	s.mu.Lock()
	s.state.State = st
	s.mu.Unlock()
}

func (s *claimService) finish(ctx context.Context, err error) {
	s.mu.Lock()
	from := s.state.State
	s.state.State = Idle
	s.state.Loading = false
	if err != nil {
		s.state.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "claim workflow failed", "state", from.String(), "error", err)
	}
}

func (s *claimService) Locate(ctx context.Context) (models.WordAddress, error) {
	if err := s.begin(LocatingDevice); err != nil {
		return "", err
	}
	words, err := s.locate(ctx)
	s.finish(ctx, err)
	return words, err
}

func (s *claimService) Claim(ctx context.Context) (models.TxHash, error) {
	if err := s.begin(GeocodingPosition); err != nil {
		return "", err
	}
	hash, err := s.claimWords(ctx)
	s.finish(ctx, err)
	return hash, err
}

func (s *claimService) ClaimHere(ctx context.Context) (models.TxHash, error) {
	if err := s.begin(LocatingDevice); err != nil {
		return "", err
	}
	hash, err := s.claimHere(ctx)
	s.finish(ctx, err)
	return hash, err
}

func (s *claimService) claimHere(ctx context.Context) (models.TxHash, error) {
	words, err := s.locate(ctx)
	if err != nil {
		return "", err
	}
	return s.claim(ctx, words)
}

// locate runs LocatingDevice and GeocodingPosition and stores the result in
// the word field.
func (s *claimService) locate(ctx context.Context) (models.WordAddress, error) {
	pos, err := s.locator.Locate(ctx)
	if err != nil {
		return "", err
	}

	s.enter(GeocodingPosition)
	words, err := s.geocoder.PositionToWords(ctx, pos)
	if err != nil {
		return "", err
	}
	if words == "" {
		return "", fmt.Errorf("%w: empty result for %v,%v", common.ErrInvalidAddress, pos.Lat, pos.Lng)
	}

	s.mu.Lock()
	s.state.Words = words
	s.mu.Unlock()
	s.log.Debug(ctx, "position geocoded", "lat", pos.Lat, "lng", pos.Lng, "words", words)
	return words, nil
}

// claimWords checks the typed word field against the geocoder before
// claiming it.
func (s *claimService) claimWords(ctx context.Context) (models.TxHash, error) {
	words := s.Snapshot().Words
	if strings.TrimSpace(string(words)) == "" || !words.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidAddress, words)
	}
	if _, err := s.geocoder.WordsToCoordinates(ctx, words); err != nil {
		return "", err
	}
	return s.claim(ctx, words)
}

// claim runs CheckingUser, the optional RegisteringUser and ClaimingParcel.
func (s *claimService) claim(ctx context.Context, words models.WordAddress) (models.TxHash, error) {
	s.enter(CheckingUser)
	addr, err := s.wallet.Address()
	if err != nil {
		return "", err
	}

	user, err := s.reader.GetUser(ctx, addr)
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		s.enter(RegisteringUser)
		name, err := s.names.Username(ctx, addr)
		if err != nil {
			return "", err
		}
		hash, err := s.writer.RegisterUser(ctx, name)
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.state.Registered = true
		s.mu.Unlock()
		s.log.Info(ctx, "user registered", "address", addr.Hex(), "username", name, "tx", hash)
	}

	s.enter(ClaimingParcel)
	hash, err := s.writer.ClaimParcel(ctx, words)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.state.Words = ""
	s.state.LastTx = hash
	s.mu.Unlock()
	s.log.Info(ctx, "land claimed", "words", words, "tx", hash)
	return hash, nil
}
