// Package kernel provides shared domain primitives for the fulfillment core.
//
// The package includes:
//   - UUID: aggregate identifier with validation
//   - TenantID: slug of the restaurant brand owning orders and zones
//   - Address: immutable delivery address snapshot
//
// All primitives are immutable values whose zero value fails Validate.
package kernel
