package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Node is a JSON-RPC connection to the chain the registries live on.
type Node struct {
	client  *ethclient.Client
	chainID *big.Int
}

// Dial prepares a client for rpcURL. For HTTP endpoints no request is made
// until the first call, so an unreachable node is reported by Ping rather
// than here.
func Dial(ctx context.Context, rpcURL string, chainID int64) (*Node, error) {
	c, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return &Node{client: c, chainID: big.NewInt(chainID)}, nil
}

// Backend is what contracts are bound to.
func (n *Node) Backend() bind.ContractBackend {
	return n.client
}

func (n *Node) ChainID() *big.Int {
	return new(big.Int).Set(n.chainID)
}

// Ping checks that the node answers and serves the expected chain.
func (n *Node) Ping(ctx context.Context) error {
	id, err := n.client.ChainID(ctx)
	if err != nil {
		return err
	}
	if id.Cmp(n.chainID) != 0 {
		return fmt.Errorf("node serves chain %s, want %s", id, n.chainID)
	}
	return nil
}

// WaitMined is the Confirmer backed by this node.
func (n *Node) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, n.client, tx)
}

func (n *Node) Close() {
	n.client.Close()
}
