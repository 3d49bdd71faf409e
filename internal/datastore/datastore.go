// Package datastore defines the row-oriented table the repair desk persists
// to, and the adapter that tracks whether that table could be reached.
package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrUnavailable is returned when the table could not be opened at startup.
var ErrUnavailable = errors.New("datastore unavailable")

// Table is a remote grid of text cells. Positions are 1-based.
type Table interface {
	AppendRow(ctx context.Context, cells []string) error
	// ReadAllRows returns every row including the header.
	ReadAllRows(ctx context.Context) ([][]string, error)
	UpdateCell(ctx context.Context, row, col int, value string) error
}

// Opener connects to a table.
type Opener func(ctx context.Context) (Table, error)

// Adapter holds the table opened at startup, or the reason it could not be
// opened. It is never reconnected.
type Adapter struct {
	table Table
	err   error
}

// Connect runs open once. A failure leaves the adapter unavailable for the
// lifetime of the process.
func Connect(ctx context.Context, open Opener) *Adapter {
	table, err := open(ctx)
	if err == nil && table == nil {
		err = errors.New("opener returned no table")
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to datastore; running degraded")
		return Unavailable(err)
	}
	log.Info().Msg("Connected to datastore")
	return &Adapter{table: table}
}

// Unavailable returns an adapter that rejects every call with ErrUnavailable.
func Unavailable(cause error) *Adapter {
	if cause == nil {
		cause = errors.New("not configured")
	}
	return &Adapter{err: cause}
}

// NewAdapter wraps an already-open table.
func NewAdapter(table Table) *Adapter {
	return &Adapter{table: table}
}

// Available reports whether the table was opened.
func (a *Adapter) Available() bool {
	return a != nil && a.table != nil
}

// Err returns the initialization failure, or nil when available.
func (a *Adapter) Err() error {
	if a == nil {
		return ErrUnavailable
	}
	return a.err
}

// Table returns the open table or an error wrapping ErrUnavailable.
func (a *Adapter) Table() (Table, error) {
	if !a.Available() {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, a.Err())
	}
	return a.table, nil
}
