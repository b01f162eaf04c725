package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBarcode is returned when a barcode does not reduce to 8 or 12 digits
	ErrInvalidBarcode = errors.New("barcode must contain exactly 8 or 12 digits")

	// ErrProductNotCached is returned when a barcode has no row in the product store
	ErrProductNotCached = errors.New("product not cached")

	// ErrStoreUnavailable is returned when the product store cannot be reached
	ErrStoreUnavailable = errors.New("product store unavailable")

	// ErrProductNotFound is returned when the upstream API confirms no such product exists
	ErrProductNotFound = errors.New("product not found in barcode database")

	// ErrRemoteFailure is returned when the barcode lookup API request fails
	ErrRemoteFailure = errors.New("barcode lookup API request failed")

	// ErrClassifierUnavailable is returned when the classifier call fails; it is
	// always absorbed by the resolver, never surfaced to callers
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// UpstreamError carries the status code the barcode lookup API responded with
// after the retry budget was exhausted. It matches ErrRemoteFailure under
// errors.Is so callers can treat it as a remote failure without unwrapping.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("barcode lookup API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("barcode lookup API returned status %d: %s", e.StatusCode, e.Detail)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrRemoteFailure
}
