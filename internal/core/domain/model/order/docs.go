// Package order implements the Order aggregate of the fulfillment core and the
// state machine that governs its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the checkout snapshot, totals, payment,
//     the POS reference and the courier delivery sub-record
//   - Status: the closed status enumeration and its transition rules
//   - DeliveryStatus, Delivery, Quote: the courier side of an order
//   - Item, Modifier, Customer: immutable snapshots taken at checkout
//
// Key business rules:
//   - Status follows Pending -> Paid -> Preparing -> Ready -> OutForDelivery -> Delivered,
//     one step at a time; Canceled is reachable from every non-terminal status
//   - Delivered and Canceled are terminal
//   - total == subtotal + tax + delivery fee, fixed at creation
//   - The POS reference and the courier job id are set at most once
//   - Free-form status strings are normalized by ParseStatus and ParseDeliveryStatus
//     before they reach the aggregate
package order
