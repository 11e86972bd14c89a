package models

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// WordAddress is a what3words address ("index.home.raft") and the unique key
// of a land parcel.
type WordAddress string

// ParseWordAddress trims surrounding whitespace and a leading "///" marker.
func ParseWordAddress(s string) WordAddress {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "///")
	return WordAddress(s)
}

// Valid reports whether w has the three dot-separated non-empty words shape.
// The geocoder remains the authority on whether the words exist.
func (w WordAddress) Valid() bool {
	parts := strings.Split(string(w), ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t/") {
			return false
		}
	}
	return true
}

func (w WordAddress) String() string { return string(w) }

// LandParcel is a LandRegistry entry.
type LandParcel struct {
	Words     WordAddress
	Owner     common.Address
	ClaimedAt time.Time
	IsClaimed bool
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}
