package chain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// userTuple mirrors struct UserRegistry.User.
type userTuple struct {
	UserAddress ethcommon.Address `json:"userAddress"`
	Username    string            `json:"username"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   *big.Int          `json:"createdAt"`
	LastActive  *big.Int          `json:"lastActive"`
}

// landTuple mirrors struct LandRegistry.Land.
type landTuple struct {
	What3words string            `json:"what3words"`
	Owner      ethcommon.Address `json:"owner"`
	ClaimedAt  *big.Int          `json:"claimedAt"`
	IsClaimed  bool              `json:"isClaimed"`
}

// single checks that a call produced exactly one non-nil return value.
func single(method string, out []any) (any, error) {
	if len(out) != 1 || out[0] == nil {
		return nil, fmt.Errorf("%w: %s returned %d values", common.ErrDecode, method, len(out))
	}
	return out[0], nil
}

// convertTuple copies the anonymous struct produced by the ABI decoder into
// T. abi.ConvertType panics on a shape mismatch; the panic becomes ErrDecode.
func convertTuple[T any](method string, out []any) (v T, err error) {
	raw, err := single(method, out)
	if err != nil {
		return v, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", common.ErrDecode, method, r)
		}
	}()
	return *abi.ConvertType(raw, new(T)).(*T), nil
}

func unixTime(method, field string, v *big.Int) (time.Time, error) {
	if v == nil || v.Sign() == 0 {
		return time.Time{}, nil
	}
	if v.Sign() < 0 || !v.IsInt64() {
		return time.Time{}, fmt.Errorf("%w: %s: %s out of range", common.ErrDecode, method, field)
	}
	return time.Unix(v.Int64(), 0).UTC(), nil
}

func decodeUser(out []any) (models.User, error) {
	t, err := convertTuple[userTuple]("getUser", out)
	if err != nil {
		return models.User{}, err
	}
	if t.IsActive && t.UserAddress == (ethcommon.Address{}) {
		return models.User{}, fmt.Errorf("%w: getUser: active user without address", common.ErrDecode)
	}
	created, err := unixTime("getUser", "createdAt", t.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	last, err := unixTime("getUser", "lastActive", t.LastActive)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Address:    t.UserAddress,
		Username:   t.Username,
		IsActive:   t.IsActive,
		CreatedAt:  created,
		LastActive: last,
	}, nil
}

// decodeParcel reports ErrNotFound for a parcel the registry does not hold.
func decodeParcel(words models.WordAddress, out []any) (models.LandParcel, error) {
	t, err := convertTuple[landTuple]("getLandDetails", out)
	if err != nil {
		return models.LandParcel{}, err
	}
	if !t.IsClaimed || t.Owner == (ethcommon.Address{}) {
		return models.LandParcel{}, fmt.Errorf("land %q: %w", words, common.ErrNotFound)
	}
	claimed, err := unixTime("getLandDetails", "claimedAt", t.ClaimedAt)
	if err != nil {
		return models.LandParcel{}, err
	}
	key := models.WordAddress(t.What3words)
	if key == "" {
		key = words
	}
	return models.LandParcel{Words: key, Owner: t.Owner, ClaimedAt: claimed, IsClaimed: true}, nil
}

func decodeWords(out []any) ([]models.WordAddress, error) {
	raw, err := single("getUserLands", out)
	if err != nil {
		return nil, err
	}
	list, ok := raw.([]string)
	if !ok {
		return nil, fmt.Errorf("%w: getUserLands: got %T", common.ErrDecode, raw)
	}
	words := make([]models.WordAddress, 0, len(list))
	for _, w := range list {
		words = append(words, models.WordAddress(w))
	}
	return words, nil
}

func decodeAddress(method string, out []any) (ethcommon.Address, error) {
	raw, err := single(method, out)
	if err != nil {
		return ethcommon.Address{}, err
	}
	addr, ok := raw.(ethcommon.Address)
	if !ok {
		return ethcommon.Address{}, fmt.Errorf("%w: %s: got %T", common.ErrDecode, method, raw)
	}
	return addr, nil
}
