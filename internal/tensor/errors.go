package tensor

import "github.com/pkg/errors"

// The two failure conditions of the checked API surface. Every error
// returned by this package wraps one of them, so callers can classify
// failures with errors.Is.
var (
	// ErrInvalidArgument reports a call that violates an API contract:
	// a multi-index or Einstein-tag tuple whose length differs from the
	// tensor order, a zero-step span over a non-degenerate range, a
	// negative extent, or a non-conforming expression operand.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports a checked access whose index or resolved
	// offset lies outside the valid range. It originates in the backing
	// store (or dimension lookup) and propagates unchanged.
	ErrOutOfRange = errors.New("out of range")
)
