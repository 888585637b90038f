package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
)

// ZoneRepository is the read-mostly store of delivery zones.
type ZoneRepository interface {
	// ListByTenant returns the tenant's zones ordered by position.
	ListByTenant(ctx context.Context, tenantID kernel.TenantID) ([]zone.Zone, error)

	// ReplaceForTenant swaps the tenant's whole zone list. Used by configuration seeding.
	ReplaceForTenant(ctx context.Context, tenantID kernel.TenantID, zones []zone.Zone) error
}
