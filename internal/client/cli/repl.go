package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a recording stub.
type execIface interface {
	isConnected() bool
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Whoami(ctx context.Context) error
	Locate(ctx context.Context) error
	Words(ctx context.Context, args []string) error
	Claim(ctx context.Context, args []string) error
	ClaimHere(ctx context.Context) error
	Lands(ctx context.Context) error
	Swap(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Delete(ctx context.Context) error
	SetName(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpDisconnected = "Available commands: connect, locate, words <w3w>, setname [name], history, reset, exit"
	helpConnected    = "Available commands: whoami, locate, words <w3w>, claim [w3w], claimhere, lands, swap, approve [address], setname [name], delete, history, reset, disconnect, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Command prompts read from the same reader, so it must not
// be wrapped a second time. Handlers report their own errors; the loop
// ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("landgrab %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isConnected() {
				printlnFn(helpConnected)
			} else {
				printlnFn(helpDisconnected)
			}

		case "connect":
			_ = a.Connect(ctx)

		case "disconnect":
			_ = a.Disconnect(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "locate":
			_ = a.Locate(ctx)

		case "words":
			_ = a.Words(ctx, args)

		case "claim":
			_ = a.Claim(ctx, args)

		case "claimhere":
			_ = a.ClaimHere(ctx)

		case "l", "lands":
			_ = a.Lands(ctx)

		case "swap":
			_ = a.Swap(ctx)

		case "approve":
			_ = a.Approve(ctx, args)

		case "delete":
			_ = a.Delete(ctx)

		case "setname":
			_ = a.SetName(ctx, args)

		case "history":
			_ = a.History(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
