package queries

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// GetOrderTrackingQueryHandler serves the public tracker through a read-through cache.
//
// The command side writes a fresh snapshot after every committed change and the cache
// keeps only the newest version, so a fill from a read that raced a commit is dropped. Cache failures are logged and the order store is
// used instead. A nil cache disables caching.
type GetOrderTrackingQueryHandler struct {
	orders OrderReader
	cache  ports.TrackingCache
	logger *slog.Logger
}

func NewGetOrderTrackingQueryHandler(
	orders OrderReader,
	cache ports.TrackingCache,
	logger *slog.Logger,
) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{
		orders: orders,
		cache:  cache,
		logger: logger.With("component", "tracking_query"),
	}
}

func (h GetOrderTrackingQueryHandler) Handle(ctx context.Context, query GetOrderTrackingQuery) (ports.TrackingSnapshot, error) {
	if err := query.Validate(); err != nil {
		return ports.TrackingSnapshot{}, err
	}
	orderID := query.OrderID().String()

	if h.cache != nil {
		snapshot, ok, err := h.cache.Get(ctx, orderID)
		switch {
		case err != nil:
			h.logger.WarnContext(ctx, "Tracking cache read failed", "order_id", orderID, "error", err)
		case ok:
			return snapshot, nil
		}
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}
	snapshot := ports.NewTrackingSnapshot(o)

	if h.cache != nil {
		if _, err = h.cache.Set(ctx, snapshot); err != nil {
			h.logger.WarnContext(ctx, "Tracking cache write failed", "order_id", orderID, "error", err)
		}
	}
	return snapshot, nil
}
