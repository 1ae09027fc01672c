package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Operation error kinds. Every repository and renewal-engine failure wraps
// exactly one of these sentinels so callers can classify with errors.Is and
// render an appropriate message.
var (
	// ErrValidation marks malformed or missing required input, such as a
	// non-positive price or a blank domain on a template that requires one.
	ErrValidation = errors.New("invalid input")

	// ErrConstraint marks a uniqueness or referential violation surfaced by
	// the storage engine, such as a duplicate customer email.
	ErrConstraint = errors.New("constraint violation")

	// ErrNotFound marks a referenced id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks an underlying engine failure: malformed statement,
	// snapshot corruption on load, or a failed persist.
	ErrStorage = errors.New("storage failure")

	// ErrPaymentCompleted is returned when CompleteRenewal is called for a
	// payment whose status is already completed. The processing to completed
	// transition happens exactly once.
	ErrPaymentCompleted = errors.New("payment already completed")
)
