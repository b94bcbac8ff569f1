package battle

import "errors"

var (
	// ErrInvalidInput reports a malformed team or character before any phase runs.
	ErrInvalidInput = errors.New("invalid battle input")

	// ErrNoBehavior reports a battle skill whose behavior kind has no factory.
	ErrNoBehavior = errors.New("battle skill has no behavior")

	// ErrInternal reports a broken invariant during resolution.
	// The battle is aborted and no partial result is returned.
	ErrInternal = errors.New("internal battle error")
)
