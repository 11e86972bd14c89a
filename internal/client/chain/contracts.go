package chain

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:embed abi/*.json
var abiFS embed.FS

// GasLimit is the ceiling sent with every write; gas is never estimated.
const GasLimit uint64 = 1_000_000

// Contract is the part of *bind.BoundContract the reader and writer use.
type Contract interface {
	Call(opts *bind.CallOpts, results *[]any, method string, params ...any) error
	Transact(opts *bind.TransactOpts, method string, params ...any) (*types.Transaction, error)
}

// Addresses locates the deployed registries.
type Addresses struct {
	UserRegistry common.Address
	LandRegistry common.Address
	LandSwap     common.Address
}

// Contracts groups the three bound registries.
type Contracts struct {
	Users Contract
	Lands Contract
	Swaps Contract
}

// LoadABI parses the embedded ABI fragment for name ("UserRegistry",
// "LandRegistry" or "LandSwap").
func LoadABI(name string) (abi.ABI, error) {
	data, err := abiFS.ReadFile("abi/" + name + ".json")
	if err != nil {
		return abi.ABI{}, fmt.Errorf("abi %s: %w", name, err)
	}
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("abi %s: %w", name, err)
	}
	return parsed, nil
}

// Bind binds the registries at addrs to backend.
func Bind(backend bind.ContractBackend, addrs Addresses) (*Contracts, error) {
	bindOne := func(name string, addr common.Address) (Contract, error) {
		parsed, err := LoadABI(name)
		if err != nil {
			return nil, err
		}
		return bind.NewBoundContract(addr, parsed, backend, backend, backend), nil
	}

	users, err := bindOne("UserRegistry", addrs.UserRegistry)
	if err != nil {
		return nil, err
	}
	lands, err := bindOne("LandRegistry", addrs.LandRegistry)
	if err != nil {
		return nil, err
	}
	swaps, err := bindOne("LandSwap", addrs.LandSwap)
	if err != nil {
		return nil, err
	}
	return &Contracts{Users: users, Lands: lands, Swaps: swaps}, nil
}
