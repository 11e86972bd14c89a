// Package common defines the sentinel errors shared by the landgrab client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrBusy               = errors.New("another operation is in progress")

	// Device and geocoder errors.
	ErrGeolocationUnavailable = errors.New("geolocation is not available on this device")
	ErrGeocode                = errors.New("geocoder request failed")
	ErrInvalidAddress         = errors.New("invalid what3words address")

	// Registry read errors.
	ErrNotFound = errors.New("not found")
	ErrDecode   = errors.New("unexpected contract response")

	// Registry write errors.
	ErrTransaction     = errors.New("transaction failed")
	ErrAlreadyDeleted  = errors.New("account already deleted")
	ErrInvalidProposer = errors.New("invalid proposer address")
	ErrIncompleteSwap  = errors.New("select your land and enter their land")
	ErrUsernameTaken   = errors.New("username is already taken")
)

// TxError reports a failed submission or confirmation of a registry write.
// Error returns the upstream message unchanged so it can be shown to the
// user verbatim; errors.Is(err, ErrTransaction) holds for every TxError.
type TxError struct {
	Method string
	Hash   string
	Err    error
}

func (e *TxError) Error() string {
	if e.Err == nil {
		return ErrTransaction.Error()
	}
	return e.Err.Error()
}

func (e *TxError) Unwrap() error { return e.Err }

func (e *TxError) Is(target error) bool { return target == ErrTransaction }

// NewTxError wraps err as a TxError for the given contract method.
func NewTxError(method, hash string, err error) error {
	return &TxError{Method: method, Hash: hash, Err: err}
}
