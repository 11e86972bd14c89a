package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type call struct {
	method string
	params []any
	gas    uint64
}

// fakeContract records calls and answers from canned values.
type fakeContract struct {
	calls []call

	callOut map[string][]any
	callErr error

	txErr error
}

func (f *fakeContract) Call(_ *bind.CallOpts, results *[]any, method string, params ...any) error {
	f.calls = append(f.calls, call{method: method, params: params})
	if f.callErr != nil {
		return f.callErr
	}
	*results = f.callOut[method]
	return nil
}

func (f *fakeContract) Transact(opts *bind.TransactOpts, method string, params ...any) (*types.Transaction, error) {
	f.calls = append(f.calls, call{method: method, params: params, gas: opts.GasLimit})
	if f.txErr != nil {
		return nil, f.txErr
	}
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.calls)), Gas: opts.GasLimit, GasPrice: big.NewInt(1)}), nil
}

type fakeSigner struct {
	err error
}

func (s fakeSigner) TransactOpts(context.Context) (*bind.TransactOpts, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &bind.TransactOpts{From: ethcommon.HexToAddress("0x00000000000000000000000000000000000000a1")}, nil
}

func confirmWith(status uint64, err error) Confirmer {
	return func(_ context.Context, _ *types.Transaction) (*types.Receipt, error) {
		if err != nil {
			return nil, err
		}
		return &types.Receipt{Status: status, BlockNumber: big.NewInt(42)}, nil
	}
}

func newContracts() (*Contracts, *fakeContract, *fakeContract, *fakeContract) {
	u, l, s := &fakeContract{}, &fakeContract{}, &fakeContract{}
	return &Contracts{Users: u, Lands: l, Swaps: s}, u, l, s
}
