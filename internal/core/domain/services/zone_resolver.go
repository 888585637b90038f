package services

import (
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
)

// ZoneResolver picks the delivery zone for an address.
//
// Precedence, most specific first:
//   - a city-part name match
//   - a postal-code prefix match
//   - a city-only match
//
// The first tier with any match wins. Inside a tier, the zone with the lowest
// configured position wins, and list order breaks position ties. Zones of other
// tenants are ignored. When nothing matches, zone.ErrNotCovered is returned;
// the resolver never falls back to a zero fee.
//
// Example usage:
//
//	resolver := services.NewZoneResolver()
//	res, err := resolver.Resolve(tenant, zones, address)
//	if errors.Is(err, zone.ErrNotCovered) {
//	    // refuse order creation or courier dispatch
//	}
type ZoneResolver struct{}

func NewZoneResolver() ZoneResolver {
	return ZoneResolver{}
}

// Resolve is deterministic: identical inputs always give identical output.
func (ZoneResolver) Resolve(tenantID kernel.TenantID, zones []zone.Zone, address kernel.Address) (zone.Resolution, error) {
	candidates := make([]zone.Zone, 0, len(zones))
	for _, z := range zones {
		if z.Validate() != nil || !z.TenantID().IsEqual(tenantID) {
			continue
		}
		candidates = append(candidates, z)
	}
	slices.SortStableFunc(candidates, func(a, b zone.Zone) int {
		return a.Position() - b.Position()
	})

	normalized := zone.NormalizeAddress(address)
	for _, tier := range zone.Tiers {
		for _, z := range candidates {
			if z.Matches(tier, normalized) {
				return zone.Resolution{Zone: z, Tier: tier}, nil
			}
		}
	}
	return zone.Resolution{}, zone.ErrNotCovered
}

// ValidateMinOrder resolves the zone and checks totalCents against its minimum.
// A zone without a minimum always validates.
func (r ZoneResolver) ValidateMinOrder(
	tenantID kernel.TenantID,
	zones []zone.Zone,
	address kernel.Address,
	totalCents int64,
) (zone.MinOrderCheck, error) {
	res, err := r.Resolve(tenantID, zones, address)
	if err != nil {
		return zone.MinOrderCheck{}, err
	}
	return res.CheckMinOrder(totalCents), nil
}
