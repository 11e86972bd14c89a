// Package metadata stores small client preferences (such as the preferred
// registry handle) as key/value pairs in the local database.
package metadata

import "context"

// Well-known keys.
const (
	KeyUsername = "username"
)

// Repository is a key/value store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
