package contracts

import (
	"errors"
	"fmt"
)

// Pipeline errors. Both are fatal to the batch; the pipeline never retries
// and never returns partial aggregates.
var (
	// ErrNoRows is returned when the input batch is empty or absent,
	// before any normalization happens.
	ErrNoRows = errors.New("no data rows found in floor-sheet input")

	// ErrNoValidTrades is returned when every row failed the validity
	// predicate after normalization.
	ErrNoValidTrades = errors.New("no valid trades found: rows must carry symbol, buyer, seller, positive quantity and rate")
)

// MalformedFieldError identifies a field that failed numeric parsing.
// Reserved for strict-mode callers; the default pipeline zero-defaults
// unparseable numerics instead of rejecting the row.
type MalformedFieldError struct {
	Field string
	Value any
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed numeric field %q: %v", e.Field, e.Value)
}
