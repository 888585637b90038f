package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// defaultPersistAttempts bounds how often a result of an external call is re-applied
// after losing a CAS race. The external side effect already happened, so giving up
// early would leave it unrecorded.
const defaultPersistAttempts = 5

// mutation changes an order in memory and reports whether anything changed.
type mutation func(o *order.Order) (bool, error)

// loadOrder reads the current order state in a short transaction.
func loadOrder(ctx context.Context, factory OrderUoWFactory, id kernel.UUID) (*order.Order, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, id)
}

// casWrite reads the order, applies mutate and writes it back keyed on the version
// that was read. An unchanged order is not written. A lost race surfaces as
// *errs.ConcurrentModificationError.
func casWrite(ctx context.Context, factory OrderUoWFactory, id kernel.UUID, mutate mutation) (*order.Order, bool, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	changed, err := mutate(o)
	if err != nil {
		return o, false, err
	}
	if !changed {
		return o, false, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}
	return o, true, nil
}

// persistExternalResult repeats casWrite while it loses races.
func persistExternalResult(
	ctx context.Context,
	factory OrderUoWFactory,
	id kernel.UUID,
	attempts int,
	mutate mutation,
) (*order.Order, bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		o, changed, err := casWrite(ctx, factory, id, mutate)
		if err == nil {
			return o, changed, nil
		}
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return o, false, err
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, false, lastErr
}
