// Package wallet holds the signing key of the session. Connecting loads a
// key (raw hex or an encrypted keystore file); disconnecting forgets it.
// While disconnected every signing request fails with
// common.ErrWalletNotConnected.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type Session struct {
	mu      sync.RWMutex
	chainID *big.Int
	opts    *bind.TransactOpts
}

func NewSession(chainID *big.Int) *Session {
	return &Session{chainID: chainID}
}

// ConnectKey makes key the session signer.
func (s *Session) ConnectKey(key *ecdsa.PrivateKey) error {
	opts, err := bind.NewKeyedTransactorWithChainID(key, s.chainID)
	if err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
	return nil
}

// ConnectHex connects a hex-encoded secp256k1 private key, with or without
// the 0x prefix.
func (s *Session) ConnectHex(hexKey string) error {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return fmt.Errorf("wallet: invalid private key: %w", err)
	}
	return s.ConnectKey(key)
}

// ConnectKeystore decrypts a V3 keystore file with password.
func (s *Session) ConnectKeystore(keyJSON []byte, password string) error {
	k, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		return fmt.Errorf("wallet: keystore: %w", err)
	}
	return s.ConnectKey(k.PrivateKey)
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	s.opts = nil
	s.mu.Unlock()
}

func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts != nil
}

// Address returns the connected account.
func (s *Session) Address() (ethcommon.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.opts == nil {
		return ethcommon.Address{}, common.ErrWalletNotConnected
	}
	return s.opts.From, nil
}

// TransactOpts returns a copy of the signer options so callers may set
// per-call fields.
func (s *Session) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.opts == nil {
		return nil, common.ErrWalletNotConnected
	}
	opts := *s.opts
	opts.Context = ctx
	return &opts, nil
}
