package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler records courier progress on the delivery
// sub-record. It never changes the order status itself; when the mapping rule
// matches it asks the advance handler for the step, and that request goes through
// the usual compare-and-swap. Mapping failures are logged only.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory      OrderUoWFactory
	advance         AdvanceOrderStatusCommandHandler
	rule            StatusMappingRule
	persistAttempts int
	notifier        *ChangeNotifier
	logger          *slog.Logger
	now             func() time.Time
}

func NewUpdateDeliveryStatusCommandHandler(
	uowFactory OrderUoWFactory,
	advance AdvanceOrderStatusCommandHandler,
	rule StatusMappingRule,
	notifier *ChangeNotifier,
	logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:      uowFactory,
		advance:         advance,
		rule:            rule,
		persistAttempts: defaultPersistAttempts,
		notifier:        notifier,
		logger:          logger.With("component", "delivery_status_handler"),
		now:             time.Now,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	orderID := cmd.OrderID().String()

	o, changed, err := persistExternalResult(ctx, h.uowFactory, cmd.OrderID(), h.persistAttempts,
		func(o *order.Order) (bool, error) {
			return o.UpdateDeliveryProgress(cmd.JobID(), cmd.Status(), cmd.TrackingURL(), h.now())
		})
	if err != nil {
		return nil, err
	}
	if !changed {
		h.logger.DebugContext(ctx, "Courier update ignored", "order_id", orderID, "courier_status", cmd.Status().String())
		return o, nil
	}

	h.logger.InfoContext(ctx, "Delivery status updated",
		"order_id", orderID, "job_id", cmd.JobID(), "courier_status", cmd.Status().String())
	h.notifier.OrderChanged(ctx, ports.DeliveryUpdated, o)

	target, ok := h.rule.Target(o.Status(), cmd.Status())
	if !ok {
		return o, nil
	}
	advanceCmd, err := NewAdvanceOrderStatusCommand(cmd.OrderID(), target)
	if err != nil {
		h.logger.ErrorContext(ctx, "Status mapping produced an invalid command", "order_id", orderID, "error", err)
		return o, nil
	}
	advanced, err := h.advance.Handle(ctx, advanceCmd)
	if err != nil {
		h.logger.WarnContext(ctx, "Status mapping not applied",
			"order_id", orderID, "courier_status", cmd.Status().String(), "target", target.String(), "error", err)
		return o, nil
	}
	return advanced, nil
}
