package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ChangeNotifier runs the after-commit side effects of an order change: it writes the
// fresh tracking view to the cache and publishes an event. Failures are logged and swallowed;
// the change itself is already durable. A nil *ChangeNotifier does nothing.
type ChangeNotifier struct {
	publisher ports.EventPublisher
	cache     ports.TrackingCache
	logger    *slog.Logger
}

// NewChangeNotifier accepts nil publisher or cache to disable that side effect.
func NewChangeNotifier(publisher ports.EventPublisher, cache ports.TrackingCache, logger *slog.Logger) *ChangeNotifier {
	return &ChangeNotifier{
		publisher: publisher,
		cache:     cache,
		logger:    logger.With("component", "change_notifier"),
	}
}

func (n *ChangeNotifier) OrderChanged(ctx context.Context, eventType ports.EventType, o *order.Order) {
	if n == nil || o == nil {
		return
	}
	orderID := o.ID().String()

	if n.cache != nil {
		if _, err := n.cache.Set(ctx, ports.NewTrackingSnapshot(o)); err != nil {
			n.logger.WarnContext(ctx, "Failed to refresh tracking cache", "order_id", orderID, "error", err)
		}
	}

	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, eventFromOrder(eventType, o)); err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish order event",
			"order_id", orderID, "event", string(eventType), "error", err)
	}
}

func eventFromOrder(eventType ports.EventType, o *order.Order) ports.OrderEvent {
	event := ports.OrderEvent{
		Type:       eventType,
		OrderID:    o.ID().String(),
		TenantID:   o.TenantID().String(),
		Status:     o.Status().String(),
		Version:    o.Version(),
		OccurredAt: o.UpdatedAt(),
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if ref, ok := o.POSSyncRef(); ok {
		event.POSSyncRef = ref
	}
	if d := o.Delivery(); d != nil {
		event.DeliveryJobID = d.JobID
		event.DeliveryStatus = d.Status.String()
	}
	return event
}
