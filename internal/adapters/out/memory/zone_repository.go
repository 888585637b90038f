package memory

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
)

// ZoneRepository implements ports.ZoneRepository over a Store.
type ZoneRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *ZoneRepository) ListByTenant(_ context.Context, tenantID kernel.TenantID) ([]zone.Zone, error) {
	r.store.mu.RLock()
	params := append([]zone.Params(nil), r.store.zones[tenantID.String()]...)
	r.store.mu.RUnlock()

	sort.SliceStable(params, func(i, j int) bool { return params[i].Position < params[j].Position })

	zones := make([]zone.Zone, 0, len(params))
	for _, p := range params {
		z, err := zone.NewZone(p)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func (r *ZoneRepository) ReplaceForTenant(_ context.Context, tenantID kernel.TenantID, zones []zone.Zone) error {
	params := make([]zone.Params, 0, len(zones))
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return err
		}
		params = append(params, z.Params())
	}
	key := tenantID.String()

	return write(r.store, r.uow, change{
		apply: func(s *Store) { s.zones[key] = params },
	})
}
