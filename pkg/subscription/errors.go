package subscription

import "errors"

var (
	// ErrInvalidInput marks caller-supplied data that fails validation.
	ErrInvalidInput = errors.New("invalid subscription input")

	// ErrInvalidDuration is returned for billing intervals other than monthly or yearly.
	ErrInvalidDuration = errors.New("invalid subscription duration")

	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadyCanceled      = errors.New("subscription already canceled")

	// ErrInvalidTransition is returned when the stored status does not permit the operation.
	ErrInvalidTransition = errors.New("subscription status does not permit this operation")

	// ErrStoreFailure wraps persistence errors. Callers must not expose the wrapped details.
	ErrStoreFailure = errors.New("subscription store failure")

	// ErrStoreUnavailable is returned while the store circuit breaker is open.
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)
