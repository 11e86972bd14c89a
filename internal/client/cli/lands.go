package cli

import (
	"context"
)

func (a *App) Lands(ctx context.Context) error {
	parcels, err := a.parcels.ListMine(ctx)
	if err != nil {
		return a.fail(ctx, "lands", err)
	}
	if len(parcels) == 0 {
		a.printf("You don't own any land yet\n")
		return nil
	}

	a.printf("Your lands (%d):\n", len(parcels))
	for i, p := range parcels {
		a.printf("%3d. ///%-32s claimed %s\n", i+1, p.Words, p.ClaimedAt.Format(timeLayout))
	}
	return nil
}
