package wallet

import "errors"

// Sentinel kinds for wallet metrics errors.
var (
	// ErrInvalidMetrics marks a raw record with a negative numeric field
	// or an otherwise malformed shape. It halts scoring for that input.
	ErrInvalidMetrics = errors.New("invalid wallet metrics")
)
