// Package errs provides standardized error types for the fulfillment core.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//   - ObjectNotFoundError: an aggregate or record cannot be found
//   - ConcurrentModificationError: an optimistic compare-and-swap write lost a race
//
// Each type unwraps to a package-level sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...)
// so callers classify errors with errors.Is and extract details with errors.As.
package errs
