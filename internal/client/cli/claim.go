package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
)

func (a *App) Locate(ctx context.Context) error {
	words, err := a.claims.Locate(ctx)
	if err != nil {
		return a.fail(ctx, "locate", err)
	}
	a.printf("You are at ///%s\n", words)
	return nil
}

// Words sets the word field used by claim.
func (a *App) Words(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if w := a.claims.Snapshot().Words; w != "" {
			a.printf("///%s\n", w)
		} else {
			a.printf("Usage: words <word.word.word>\n")
		}
		return nil
	}
	if err := a.claims.SetWords(strings.Join(args, "")); err != nil {
		return a.fail(ctx, "words", err)
	}
	return nil
}

// Claim claims the word field, or the address given as argument. With
// neither, the user is asked for one.
func (a *App) Claim(ctx context.Context, args []string) error {
	switch {
	case len(args) > 0:
		if err := a.claims.SetWords(strings.Join(args, "")); err != nil {
			return a.fail(ctx, "claim", err)
		}
	case a.claims.Snapshot().Words == "":
		words, err := getSimpleText(a.reader, "Enter what3words address (e.g. index.home.raft)", a.out)
		if err != nil {
			return a.fail(ctx, "claim", err)
		}
		if err := a.claims.SetWords(words); err != nil {
			return a.fail(ctx, "claim", err)
		}
	}

	words := a.claims.Snapshot().Words
	a.printf("Claiming ///%s ...\n", words)
	hash, err := a.claims.Claim(ctx)
	return a.reportClaim(ctx, "claim", words, hash, err)
}

func (a *App) ClaimHere(ctx context.Context) error {
	a.printf("Locating device ...\n")
	hash, err := a.claims.ClaimHere(ctx)
	return a.reportClaim(ctx, "claimhere", "", hash, err)
}

func (a *App) reportClaim(ctx context.Context, op string, words models.WordAddress, hash models.TxHash, err error) error {
	snap := a.claims.Snapshot()
	if snap.Registered {
		a.printf("Registered a new account\n")
	}
	if err != nil {
		if snap.Words != "" && !errors.Is(err, common.ErrBusy) {
			a.printf("Kept ///%s, run claim to retry\n", snap.Words)
		}
		return a.fail(ctx, op, err)
	}
	if words != "" {
		a.printf("Land claimed: ///%s\n", words)
	} else {
		a.printf("Land claimed\n")
	}
	a.printf("Transaction: %s\n", hash)
	return nil
}
