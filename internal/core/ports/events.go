package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

type EventType string

const (
	OrderCreated       EventType = "OrderCreated"
	OrderStatusChanged EventType = "OrderStatusChanged"
	OrderSyncedToPOS   EventType = "OrderSyncedToPOS"
	DeliveryCreated    EventType = "DeliveryCreated"
	DeliveryUpdated    EventType = "DeliveryUpdated"
)

// OrderEvent is published after a committed change to an order.
type OrderEvent struct {
	Type           EventType `json:"type"`
	OrderID        string    `json:"orderId"`
	TenantID       string    `json:"tenantId"`
	Status         string    `json:"status"`
	POSSyncRef     string    `json:"posSyncRef,omitempty"`
	DeliveryJobID  string    `json:"deliveryJobId,omitempty"`
	DeliveryStatus string    `json:"deliveryStatus,omitempty"`
	Version        int64     `json:"version"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventPublisher delivers order events to downstream consumers. Delivery is best
// effort: callers log failures and never roll back the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// TrackingSnapshot is what the public tracker sees. Version is the order version the
// snapshot was projected from.
type TrackingSnapshot struct {
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"deliveryStatus,omitempty"`
	TrackingURL    string    `json:"trackingUrl,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Version        int64     `json:"version"`
}

// NewTrackingSnapshot projects the fields of o the public tracker may see.
func NewTrackingSnapshot(o *order.Order) TrackingSnapshot {
	snapshot := TrackingSnapshot{
		OrderID:   o.ID().String(),
		Status:    o.Status().String(),
		UpdatedAt: o.UpdatedAt(),
		Version:   o.Version(),
	}
	if d := o.Delivery(); d != nil {
		snapshot.DeliveryStatus = d.Status.String()
		snapshot.TrackingURL = d.TrackingURL
	}
	return snapshot
}

// TrackingCache is a read-through cache in front of the order store for the tracker.
//
// Set only replaces a cached snapshot with a strictly newer Version, so a reader that
// loaded the order before a commit cannot overwrite the snapshot the commit wrote.
// It reports whether the snapshot was stored.
type TrackingCache interface {
	Get(ctx context.Context, orderID string) (TrackingSnapshot, bool, error)
	Set(ctx context.Context, snapshot TrackingSnapshot) (bool, error)
}
