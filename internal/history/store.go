// Package history persists one record per build invocation so past runs can
// be inspected after the fact. The store is optional; builds run fine
// without it.
package history

import (
	"context"
	"time"
)

// Record summarizes one build invocation.
type Record struct {
	ID                string
	Started           time.Time
	Finished          time.Time
	Sets              int
	Files             int
	Emitted           int
	SkippedDuplicates int
	Outcome           string
	Error             string
}

// Store defines the interface for persisting and retrieving build records.
type Store interface {
	// Append adds a new record to the store.
	Append(ctx context.Context, rec Record) error

	// Recent retrieves up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
