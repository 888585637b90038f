package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrSyncFailed is the sentinel unwrapped from SyncFailedError.
	ErrSyncFailed = errors.New("external sync failed")

	// ErrOrderNotSyncable is returned when POS sync or courier dispatch is requested
	// for an order that is not paid yet or already canceled.
	ErrOrderNotSyncable = errors.New("order is not eligible for external sync")

	// ErrMinOrderNotMet is the sentinel unwrapped from MinOrderNotMetError.
	ErrMinOrderNotMet = errors.New("minimum order value for the delivery zone is not met")
)

// External systems, as reported in SyncFailedError.System.
const (
	SystemPOS     = "pos"
	SystemCourier = "courier"
)

// SyncFailedError reports an external call that failed for good: the retry budget
// was used up or the system rejected the request. The order is left unchanged and
// the operation may be retried later.
type SyncFailedError struct {
	System   string
	Attempts int
	Cause    error
}

func (e *SyncFailedError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempt(s): %v", ErrSyncFailed, e.System, e.Attempts, e.Cause)
}

func (e *SyncFailedError) Unwrap() []error {
	return []error{ErrSyncFailed, e.Cause}
}

// MinOrderNotMetError reports a checkout below the zone minimum.
type MinOrderNotMetError struct {
	ZoneName      string
	MinOrderCents int64
	ValueCents    int64
}

func (e *MinOrderNotMetError) Error() string {
	return fmt.Sprintf("%s: zone %q requires %d, order has %d", ErrMinOrderNotMet, e.ZoneName, e.MinOrderCents, e.ValueCents)
}

func (e *MinOrderNotMetError) Unwrap() error {
	return ErrMinOrderNotMet
}
