package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ConfirmPaymentResult tells a replayed confirmation apart from the first one.
type ConfirmPaymentResult struct {
	Order            *order.Order
	AlreadyConfirmed bool
}

// ConfirmPaymentCommandHandler records the payment reference and moves the order to
// PAID under the same compare-and-swap discipline as operator transitions.
// Webhook replays carrying the same reference succeed without writing.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   *ChangeNotifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier *ChangeNotifier,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "confirm_payment_handler"),
		now:        time.Now,
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (ConfirmPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	o, changed, err := casWrite(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		return o.ConfirmPayment(cmd.PaymentRef(), h.now())
	})
	if err != nil {
		return ConfirmPaymentResult{}, err
	}

	if !changed {
		h.logger.InfoContext(ctx, "Payment confirmation replayed", "order_id", o.ID().String())
		return ConfirmPaymentResult{Order: o, AlreadyConfirmed: true}, nil
	}

	h.logger.InfoContext(ctx, "Payment confirmed", "order_id", o.ID().String(), "version", o.Version())
	h.notifier.OrderChanged(ctx, ports.OrderStatusChanged, o)

	return ConfirmPaymentResult{Order: o}, nil
}
