package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/landgrab/internal/common"
)

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail shows err to the user and returns it. ErrBusy is returned silently:
// the command was ignored because another one is running.
func (a *App) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrBusy) {
		return err
	}
	a.log.Debug(ctx, "command failed", "command", op, "error", err)
	a.printf("Error: %s\n", err.Error())
	return err
}
