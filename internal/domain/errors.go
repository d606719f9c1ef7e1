package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an address or distance could not be determined.
	ErrNotFound = errors.New("not found")

	// ErrProviderUnavailable marks a single provider failure (network, credentials,
	// quota, malformed response). It is recovered by falling back.
	ErrProviderUnavailable = errors.New("provider unavailable")

	ErrInvalidInput           = fmt.Errorf("invalid input: %w", ErrNotFound)
	ErrNoMatchWithinTolerance = fmt.Errorf("no candidate within tolerance: %w", ErrNotFound)
	ErrResolutionFailure      = fmt.Errorf("address resolution failed: %w", ErrNotFound)
)
