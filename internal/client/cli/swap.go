package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/client/services"
)

// Swap opens the propose form: pick one of your parcels, then type the
// counterparty's word-address.
func (a *App) Swap(ctx context.Context) error {
	form, err := a.swaps.Open(ctx)
	if err != nil {
		return a.fail(ctx, "swap", err)
	}
	if len(form.Parcels) == 0 {
		a.printf("You don't own any land to swap\n")
		return nil
	}

	for i, p := range form.Parcels {
		a.printf("%3d. ///%s\n", i+1, p.Words)
	}
	choice, err := getSimpleText(a.reader, fmt.Sprintf("Select your land [1-%d] (default ///%s)", len(form.Parcels), form.Selected), a.out)
	if err != nil {
		return a.fail(ctx, "swap", err)
	}
	mine, err := pickParcel(form, choice)
	if err != nil {
		return a.fail(ctx, "swap", err)
	}

	theirs, err := getSimpleText(a.reader, "Their land (what3words)", a.out)
	if err != nil {
		return a.fail(ctx, "swap", err)
	}

	hash, err := a.swaps.Propose(ctx, string(mine), theirs)
	if err != nil {
		return a.fail(ctx, "swap", err)
	}
	a.printf("Swap proposed: ///%s for ///%s\n", mine, models.ParseWordAddress(theirs))
	a.printf("Transaction: %s\n", hash)
	return nil
}

// pickParcel resolves the user's selection: empty keeps the preselected
// parcel, a number picks by position, anything else must name an own parcel.
func pickParcel(form services.SwapForm, choice string) (models.WordAddress, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return form.Selected, nil
	}
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(form.Parcels) {
			return "", fmt.Errorf("no land number %d", n)
		}
		return form.Parcels[n-1].Words, nil
	}
	w := models.ParseWordAddress(choice)
	for _, p := range form.Parcels {
		if p.Words == w {
			return w, nil
		}
	}
	return "", fmt.Errorf("///%s is not one of your lands", w)
}

func (a *App) Approve(ctx context.Context, args []string) error {
	proposer := strings.Join(args, "")
	if proposer == "" {
		var err error
		proposer, err = getSimpleText(a.reader, "Proposer address", a.out)
		if err != nil {
			return a.fail(ctx, "approve", err)
		}
	}

	hash, err := a.swaps.Approve(ctx, proposer)
	if err != nil {
		return a.fail(ctx, "approve", err)
	}
	a.printf("Swap approved\n")
	a.printf("Transaction: %s\n", hash)
	return nil
}
