package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/metrics"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Reader is the read side of the registries.
type Reader interface {
	GetUser(ctx context.Context, addr ethcommon.Address) (models.User, error)
	ListUserParcels(ctx context.Context, owner ethcommon.Address) ([]models.WordAddress, error)
	GetParcelDetails(ctx context.Context, words models.WordAddress) (models.LandParcel, error)
	UsernameOwner(ctx context.Context, name string) (ethcommon.Address, error)
}

type ChainReader struct {
	contracts *Contracts
	metrics   *metrics.Metrics
}

func NewReader(c *Contracts, m *metrics.Metrics) *ChainReader {
	return &ChainReader{contracts: c, metrics: m}
}

func (r *ChainReader) call(ctx context.Context, c Contract, method string, params ...any) ([]any, error) {
	var out []any
	err := c.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	r.metrics.ObserveChainCall(method, err)
	return out, err
}

// GetUser returns the registry record for addr. An address that never
// registered yields the zero User (IsActive=false) and no error, whether the
// registry answers with an empty record or reverts the lookup.
func (r *ChainReader) GetUser(ctx context.Context, addr ethcommon.Address) (models.User, error) {
	out, err := r.call(ctx, r.contracts.Users, "getUser", addr)
	if err != nil {
		if isRevert(err) {
			return models.User{}, nil
		}
		return models.User{}, fmt.Errorf("getUser %s: %w", addr.Hex(), err)
	}
	return decodeUser(out)
}

// ListUserParcels returns the word-addresses owned by owner in registry order.
func (r *ChainReader) ListUserParcels(ctx context.Context, owner ethcommon.Address) ([]models.WordAddress, error) {
	out, err := r.call(ctx, r.contracts.Lands, "getUserLands", owner)
	if err != nil {
		return nil, fmt.Errorf("getUserLands %s: %w", owner.Hex(), err)
	}
	return decodeWords(out)
}

// GetParcelDetails returns the parcel stored under words, or ErrNotFound
// when the registry rejects the lookup or reports the parcel unclaimed.
func (r *ChainReader) GetParcelDetails(ctx context.Context, words models.WordAddress) (models.LandParcel, error) {
	out, err := r.call(ctx, r.contracts.Lands, "getLandDetails", string(words))
	if err != nil {
		if isRevert(err) {
			return models.LandParcel{}, fmt.Errorf("land %q: %w: %w", words, common.ErrNotFound, err)
		}
		return models.LandParcel{}, fmt.Errorf("getLandDetails %q: %w", words, err)
	}
	return decodeParcel(words, out)
}

// UsernameOwner returns the address holding name, or the zero address when
// the name is free.
func (r *ChainReader) UsernameOwner(ctx context.Context, name string) (ethcommon.Address, error) {
	out, err := r.call(ctx, r.contracts.Users, "usernameToAddress", name)
	if err != nil {
		return ethcommon.Address{}, fmt.Errorf("usernameToAddress %q: %w", name, err)
	}
	return decodeAddress("usernameToAddress", out)
}

type dataError interface {
	ErrorData() any
}

func isRevert(err error) bool {
	var de dataError
	if errors.As(err, &de) {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}
