package cli

import (
	"context"
)

const historyLimit = 20

func (a *App) History(ctx context.Context) error {
	recs, err := a.history.List(ctx, historyLimit)
	if err != nil {
		return a.fail(ctx, "history", err)
	}
	if len(recs) == 0 {
		a.printf("No transactions yet\n")
		return nil
	}
	for _, r := range recs {
		a.printf("%s  %-9s %-12s %v", r.CreatedAt.Format(timeLayout), r.Status, r.Kind, r.Args)
		if r.Hash != "" {
			a.printf("  %s", r.Hash)
		}
		if r.Error != "" {
			a.printf("  (%s)", r.Error)
		}
		a.printf("\n")
	}
	return nil
}

// Reset wipes the local journal and preferences after confirmation.
func (a *App) Reset(ctx context.Context) error {
	if !confirm(a, "Clear local history and preferences? Type 'yes' to confirm") {
		a.printf("Cancelled\n")
		return nil
	}
	if err := a.history.Reset(ctx); err != nil {
		return a.fail(ctx, "reset", err)
	}
	a.printf("Local data cleared\n")
	return nil
}
