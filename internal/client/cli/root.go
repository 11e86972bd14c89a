package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if addr, err := a.wallet.Address(); err == nil {
		s = shortAddress(addr.Hex()) + " "
	}
	s += string(a.Mode())
	if snap := a.claims.Snapshot(); snap.Words != "" {
		s += " ///" + string(snap.Words)
	}
	return fmt.Sprintf("(%s)", s)
}

// Root prints the banner and runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Land Grab (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func shortAddress(hex string) string {
	if len(hex) < 10 {
		return hex
	}
	return hex[:6] + "…" + hex[len(hex)-4:]
}
