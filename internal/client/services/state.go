package services

import "github.com/dmitrijs2005/landgrab/internal/client/models"

// State is a step of the claim workflow.
type State int

const (
	Idle State = iota
	LocatingDevice
	GeocodingPosition
	CheckingUser
	RegisteringUser
	ClaimingParcel
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LocatingDevice:
		return "locating device"
	case GeocodingPosition:
		return "geocoding position"
	case CheckingUser:
		return "checking user"
	case RegisteringUser:
		return "registering user"
	case ClaimingParcel:
		return "claiming parcel"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the claim workflow's session state.
type Snapshot struct {
	State State
	// Words is the word-address form field. It is cleared after a
	// successful claim and kept after a failed one.
	Words     models.WordAddress
	Loading   bool
	LastError string
	LastTx    models.TxHash
	// Registered is set when the last claim had to register the user first.
	Registered bool
}
