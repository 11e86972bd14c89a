package cli

import (
	"context"
	"strings"
)

// Delete deactivates the connected account after confirmation.
func (a *App) Delete(ctx context.Context) error {
	if !confirm(a, "Delete your account? Type 'yes' to confirm") {
		a.printf("Cancelled\n")
		return nil
	}
	hash, err := a.account.Delete(ctx)
	if err != nil {
		return a.fail(ctx, "delete", err)
	}
	a.printf("Account deleted\n")
	a.printf("Transaction: %s\n", hash)
	return nil
}

// SetName stores the handle used when an account has to be registered.
// Without arguments it shows the stored handle.
func (a *App) SetName(ctx context.Context, args []string) error {
	if len(args) == 0 {
		name, err := a.names.Preferred(ctx)
		if err != nil {
			return a.fail(ctx, "setname", err)
		}
		if name == "" {
			a.printf("No username set, a random one is used on registration\n")
		} else {
			a.printf("Username: %s\n", name)
		}
		return nil
	}

	name := strings.Join(args, " ")
	if err := a.names.Set(ctx, name); err != nil {
		return a.fail(ctx, "setname", err)
	}
	a.printf("Username set to %s\n", strings.TrimSpace(name))
	return nil
}

func confirm(a *App, prompt string) bool {
	answer, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "yes")
}
