// Package chain talks to the three Land Grab registries over JSON-RPC.
//
// Reader executes view calls (getUser, getUserLands, getLandDetails,
// usernameToAddress) and passes every result through a decode function that
// checks its shape before producing a models value; a malformed result is
// reported as common.ErrDecode.
//
// Writer submits state-changing calls (registerUser, deleteUser, claimLand,
// proposeSwap, approveSwap). Each write uses the fixed GasLimit, blocks until
// the transaction is mined and returns its hash. Any submission or
// confirmation failure is a *common.TxError carrying the upstream message.
//
// The contracts are bound with go-ethereum's accounts/abi/bind against ABI
// fragments embedded from the abi directory.
package chain
