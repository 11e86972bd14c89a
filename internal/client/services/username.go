package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/landgrab/internal/common"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	handleLength   = 5
	handleAttempts = 5
	maxNameLength  = 32
	handleAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NameOwners resolves registered usernames to their owners.
type NameOwners interface {
	UsernameOwner(ctx context.Context, name string) (ethcommon.Address, error)
}

// UsernameSource picks the handle a new account is registered with.
//
// A handle stored with Set wins. Otherwise a random handle is drawn and
// checked against the registry until a free one is found.
type UsernameSource interface {
	Username(ctx context.Context, self ethcommon.Address) (string, error)
	Set(ctx context.Context, name string) error
	Preferred(ctx context.Context) (string, error)
}

type usernameSource struct {
	owners NameOwners
	prefs  metadata.Repository
	rand   io.Reader
}

// NewUsernameSource builds a UsernameSource. A nil rnd uses crypto/rand.
func NewUsernameSource(owners NameOwners, prefs metadata.Repository, rnd io.Reader) UsernameSource {
	if rnd == nil {
		rnd = rand.Reader
	}
	return &usernameSource{owners: owners, prefs: prefs, rand: rnd}
}

func (u *usernameSource) Set(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	return u.prefs.Set(ctx, metadata.KeyUsername, []byte(name))
}

func (u *usernameSource) Preferred(ctx context.Context) (string, error) {
	v, err := u.prefs.Get(ctx, metadata.KeyUsername)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (u *usernameSource) Username(ctx context.Context, self ethcommon.Address) (string, error) {
	preferred, err := u.Preferred(ctx)
	if err != nil {
		return "", err
	}
	if preferred != "" {
		free, err := u.available(ctx, preferred, self)
		if err != nil {
			return "", err
		}
		if !free {
			return "", fmt.Errorf("%q: %w", preferred, common.ErrUsernameTaken)
		}
		return preferred, nil
	}

	for range handleAttempts {
		name, err := u.random()
		if err != nil {
			return "", fmt.Errorf("generate username: %w", err)
		}
		free, err := u.available(ctx, name, self)
		if err != nil {
			return "", err
		}
		if free {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free username after %d attempts: %w", handleAttempts, common.ErrUsernameTaken)
}

// available reports whether name is unowned or already belongs to self.
func (u *usernameSource) available(ctx context.Context, name string, self ethcommon.Address) (bool, error) {
	owner, err := u.owners.UsernameOwner(ctx, name)
	if err != nil {
		return false, err
	}
	return owner == (ethcommon.Address{}) || owner == self, nil
}

// random draws handleLength characters from handleAlphabet, rejecting
// bytes that would bias the distribution.
func (u *usernameSource) random() (string, error) {
	const ceiling = 256 - 256%len(handleAlphabet)
	var b strings.Builder
	buf := make([]byte, 1)
	for b.Len() < handleLength {
		if _, err := io.ReadFull(u.rand, buf); err != nil {
			return "", err
		}
		if int(buf[0]) >= ceiling {
			continue
		}
		b.WriteByte(handleAlphabet[int(buf[0])%len(handleAlphabet)])
	}
	return b.String(), nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("username must not be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("username longer than %d characters", maxNameLength)
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("username must not contain whitespace")
	}
	return nil
}
