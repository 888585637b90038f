package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := aggregate.ID().Bytes()
	snapshot := aggregate.Snapshot()

	return write(r.store, r.uow, change{
		check: func(s *Store) error {
			if _, exists := s.orders[key]; exists {
				return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("order %s already exists", aggregate.ID()))
			}
			return nil
		},
		apply: func(s *Store) { s.orders[key] = snapshot },
	})
}

// Update fails fast when the stored version already moved and checks again at commit.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := aggregate.ID().Bytes()
	expected := aggregate.Version()

	check := func(s *Store) error {
		current, ok := s.orders[key]
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		if current.Version != expected {
			return errs.NewConcurrentModificationError("order", aggregate.ID(), expected)
		}
		return nil
	}

	r.store.mu.RLock()
	err := check(r.store)
	r.store.mu.RUnlock()
	if err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	snapshot.Version = expected + 1
	return write(r.store, r.uow, change{
		check: check,
		apply: func(s *Store) { s.orders[key] = snapshot },
		after: aggregate.IncrementVersion,
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	snapshot, ok := r.store.orders[id.Bytes()]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

func (r *OrderRepository) ListForReconciliation(_ context.Context, updatedBefore time.Time, limit int) ([]*order.Order, error) {
	r.store.mu.RLock()
	candidates := make([]order.RestoreOrderParams, 0)
	for _, p := range r.store.orders {
		if p.UpdatedAt.Before(updatedBefore) && needsReconciliation(p) {
			candidates = append(candidates, p)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].UpdatedAt.Before(candidates[j].UpdatedAt)
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	orders := make([]*order.Order, 0, len(candidates))
	for _, p := range candidates {
		o, err := order.RestoreOrder(p)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func needsReconciliation(p order.RestoreOrderParams) bool {
	hasRef := p.POSSyncRef != nil
	hasJob := p.Delivery != nil
	if p.Status == order.Canceled {
		return hasRef || hasJob
	}
	return p.Status.HasReachedPayment() && (!hasRef || !hasJob)
}
