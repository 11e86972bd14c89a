package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) isConnected() bool {
	return a.wallet.Connected()
}

// Connect loads the signing key: the configured keystore file when set,
// otherwise a hex private key typed without echo.
func (a *App) Connect(ctx context.Context) error {
	if a.wallet.Connected() {
		a.printf("Already connected\n")
		return nil
	}

	if path := a.config.KeystorePath; path != "" {
		keyJSON, err := os.ReadFile(path)
		if err != nil {
			return a.fail(ctx, "connect", fmt.Errorf("read keystore: %w", err))
		}
		password, err := getPassword(a.out, "Keystore password")
		if err != nil {
			return a.fail(ctx, "connect", err)
		}
		defer wipe(password)
		if err := a.wallet.ConnectKeystore(keyJSON, string(password)); err != nil {
			return a.fail(ctx, "connect", err)
		}
	} else {
		key, err := getPassword(a.out, "Private key (hex)")
		if err != nil {
			return a.fail(ctx, "connect", err)
		}
		defer wipe(key)
		if err := a.wallet.ConnectHex(string(key)); err != nil {
			return a.fail(ctx, "connect", err)
		}
	}

	addr, _ := a.wallet.Address()
	a.log.Info(ctx, "wallet connected", "address", addr.Hex())
	a.printf("Connected as %s\n", addr.Hex())
	return nil
}

func (a *App) Disconnect(ctx context.Context) error {
	if !a.wallet.Connected() {
		a.printf("Not connected\n")
		return nil
	}
	a.wallet.Disconnect()
	a.log.Info(ctx, "wallet disconnected")
	a.printf("Disconnected\n")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	user, err := a.account.Whoami(ctx)
	if err != nil {
		return a.fail(ctx, "whoami", err)
	}

	a.printf("Address:     %s\n", user.Address.Hex())
	if !user.Registered() {
		a.printf("Status:      not registered\n")
		return nil
	}
	status := "active"
	if !user.IsActive {
		status = "deleted"
	}
	a.printf("Username:    %s\n", user.Username)
	a.printf("Status:      %s\n", status)
	a.printf("Created:     %s\n", user.CreatedAt.Format(timeLayout))
	a.printf("Last active: %s\n", user.LastActive.Format(timeLayout))
	return nil
}

const timeLayout = "2006-01-02 15:04:05"
