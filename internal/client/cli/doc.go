// Package cli provides the interactive landgrab command-line client.
//
// It wires configuration, the local journal, the chain and geocoder clients
// and the services into a REPL. A background watcher probes the RPC node and
// shows online/offline in the prompt.
//
// Commands:
//   - connect / disconnect / whoami
//   - locate, words <w3w>, claim [w3w], claimhere
//   - lands, swap, approve [address]
//   - setname [name], delete
//   - history, reset
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
