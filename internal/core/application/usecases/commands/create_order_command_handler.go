package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler creates PENDING orders. The delivery fee comes from the
// zone the address resolves to; an uncovered address or a subtotal below the zone
// minimum refuses the order.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	resolver   services.ZoneResolver
	notifier   *ChangeNotifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, notifier *ChangeNotifier, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewZoneResolver(),
		notifier:   notifier,
		logger:     logger.With("component", "create_order_handler"),
		now:        time.Now,
	}
}

// Handle returns zone.ErrNotCovered for unservable addresses and a
// *MinOrderNotMetError when the item subtotal is below the zone minimum.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	zones, err := uow.ZoneRepository().ListByTenant(ctx, cmd.TenantID())
	if err != nil {
		return nil, err
	}
	resolution, err := h.resolver.Resolve(cmd.TenantID(), zones, cmd.Address())
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", cmd.TenantID(), err)
	}

	o, err := order.NewOrder(order.NewOrderParams{
		ID:               cmd.OrderID(),
		TenantID:         cmd.TenantID(),
		Customer:         cmd.Customer(),
		Address:          cmd.Address(),
		Items:            cmd.Items(),
		TaxCents:         cmd.TaxCents(),
		DeliveryFeeCents: resolution.FeeCents(),
		CreatedAt:        h.now(),
	})
	if err != nil {
		return nil, err
	}

	if check := resolution.CheckMinOrder(o.SubtotalCents()); !check.Valid {
		return nil, &MinOrderNotMetError{
			ZoneName:      check.ZoneName,
			MinOrderCents: *check.MinOrderCents,
			ValueCents:    o.SubtotalCents(),
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order created",
		"order_id", o.ID().String(),
		"tenant_id", o.TenantID().String(),
		"zone", resolution.ZoneName(),
		"total_cents", o.TotalCents())
	h.notifier.OrderChanged(ctx, ports.OrderCreated, o)

	return o, nil
}
