package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxError_MessageIsVerbatim(t *testing.T) {
	err := NewTxError("claimLand", "", errors.New("execution reverted: Land already claimed"))

	assert.Equal(t, "execution reverted: Land already claimed", err.Error())
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestTxError_UnwrapsUpstream(t *testing.T) {
	upstream := errors.New("nonce too low")
	err := fmt.Errorf("claim: %w", NewTxError("claimLand", "0x01", upstream))

	require.ErrorIs(t, err, upstream)

	var txErr *TxError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, "claimLand", txErr.Method)
	assert.Equal(t, "0x01", txErr.Hash)
}

func TestTxError_NilUpstream(t *testing.T) {
	err := &TxError{Method: "deleteUser"}
	assert.Equal(t, ErrTransaction.Error(), err.Error())
	assert.NotErrorIs(t, err, ErrNotFound)
}
