package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// User is a UserRegistry entry. The zero value describes an address that
// never registered; IsActive is also false after deletion.
type User struct {
	Address    common.Address
	Username   string
	IsActive   bool
	CreatedAt  time.Time
	LastActive time.Time
}

// Registered reports whether the registry ever stored a record for the user.
func (u User) Registered() bool {
	return !u.CreatedAt.IsZero()
}
