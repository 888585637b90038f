package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler applies one status transition under compare-and-swap.
//
// It never retries a lost race: two operators requesting different steps at the same
// moment must not both win, so the loser receives *errs.ConcurrentModificationError
// and re-fetches. An illegal step yields *order.InvalidTransitionError.
//
// Example:
//
//	cmd, _ := NewAdvanceOrderStatusCommand(orderID, order.Preparing)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // show current status and the allowed next step
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // re-fetch and retry
//	}
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   *ChangeNotifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier *ChangeNotifier,
	logger *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "advance_order_status_handler"),
		now:        time.Now,
	}
}

func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var from order.Status
	o, _, err := casWrite(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		from = o.Status()
		if err := o.Advance(cmd.Status(), h.now()); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order status advanced",
		"order_id", o.ID().String(),
		"from", from.String(),
		"to", o.Status().String(),
		"version", o.Version())
	h.notifier.OrderChanged(ctx, ports.OrderStatusChanged, o)

	return o, nil
}
