// Package queries contains the read side of the fulfillment core: order lookups for
// operators, the public tracking view and delivery zone lookups.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
)

// OrderReader reads committed order state outside of any transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// ZoneReader reads a tenant's delivery zones ordered by position.
type ZoneReader interface {
	ListByTenant(ctx context.Context, tenantID kernel.TenantID) ([]zone.Zone, error)
}
