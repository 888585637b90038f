package events

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	p.logger.InfoContext(ctx, "Order event",
		"event", string(event.Type),
		"order_id", event.OrderID,
		"tenant_id", event.TenantID,
		"status", event.Status,
		"version", event.Version,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
