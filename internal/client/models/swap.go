package models

import "github.com/ethereum/go-ethereum/common"

// SwapProposal is what the proposer submits to LandSwap. Approval names only
// the proposer, so the client never holds a list of pending proposals.
type SwapProposal struct {
	Proposer          common.Address
	ProposerWords     WordAddress
	CounterpartyWords WordAddress
}
