package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update is a compare-and-swap write keyed on the aggregate's Version.
	// The stored row is replaced only if its version still equals aggregate.Version();
	// on success the stored and in-memory versions are incremented.
	// A stale version yields *errs.ConcurrentModificationError, a missing order
	// *errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by id, including its current version.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListForReconciliation returns orders last changed before updatedBefore that may
	// disagree with external systems: paid-or-later orders missing a POS reference or a
	// courier job, and canceled orders carrying either. Oldest first, at most limit.
	ListForReconciliation(ctx context.Context, updatedBefore time.Time, limit int) ([]*order.Order, error)
}
