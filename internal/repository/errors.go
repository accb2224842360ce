// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios: a missing aggregate maps to HTTP 404, while a product
// model whose rental-unit configuration is incomplete is a
// configuration error that must abort generation with a specific
// code rather than being silently skipped.
package repository

import "errors"

// ErrBookingNotFound is returned when the requested booking does not
// exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrGroupNotFound is returned when the requested sojourn group does
// not exist.
var ErrGroupNotFound = errors.New("sojourn group not found")

// ErrLineNotFound is returned when one of the requested booking
// lines does not exist.
var ErrLineNotFound = errors.New("booking line not found")

// ErrProductModelNotFound is returned when a line references a
// product whose model cannot be resolved.  Generation of that line
// is fatal: without the model the time grid itself is unresolvable.
var ErrProductModelNotFound = errors.New("product model not found")

// ErrMissingUnitReference is returned when a product model uses the
// UNIT assignment mode without a configured rental unit.
var ErrMissingUnitReference = errors.New("product model has no rental unit configured")

// ErrMissingCategoryReference is returned when a product model uses
// the CATEGORY assignment mode without a configured unit category.
var ErrMissingCategoryReference = errors.New("product model has no rental unit category configured")
