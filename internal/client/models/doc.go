// Package models defines the client-side view of registry state: users,
// land parcels addressed by word-addresses, swap proposals, and the local
// transaction journal records.
package models
