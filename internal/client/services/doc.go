// Package services contains the application services behind the landgrab
// REPL: the claim workflow, swap flows, account housekeeping, parcel
// listing and the local transaction history.
//
// Services receive their collaborators (geocoder, chain reader and writer,
// wallet) through constructors and keep per-session state in memory only.
package services
