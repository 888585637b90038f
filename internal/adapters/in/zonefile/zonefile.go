// Package zonefile loads delivery zones from a YAML file and seeds them into the
// zone store at startup. The file is the operator-facing zone configuration:
//
//	tenants:
//	  pizza-roma:
//	    - name: Jarovce
//	      cityParts: [Jarovce]
//	      feeCents: 290
//	      minOrderCents: 1500
//	    - name: Bratislava
//	      cities: [Bratislava]
//	      feeCents: 390
//
// Zones are listed in precedence order; a zone's position is its index in the list.
package zonefile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"

	"gopkg.in/yaml.v3"
)

type fileZone struct {
	Name           string   `yaml:"name"`
	CityParts      []string `yaml:"cityParts"`
	PostalPrefixes []string `yaml:"postalPrefixes"`
	Cities         []string `yaml:"cities"`
	FeeCents       int64    `yaml:"feeCents"`
	MinOrderCents  *int64   `yaml:"minOrderCents"`
}

type file struct {
	Tenants map[string][]fileZone `yaml:"tenants"`
}

// TenantZones is one tenant's validated zone list.
type TenantZones struct {
	TenantID kernel.TenantID
	Zones    []zone.Zone
}

// Load reads and validates the file at path.
func Load(path string) ([]TenantZones, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone file: %w", err)
	}
	return Parse(data)
}

// Parse validates every zone and reports all problems at once. Tenants are
// returned sorted by slug.
func Parse(data []byte) ([]TenantZones, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse zone file: %w", err)
	}

	slugs := make([]string, 0, len(f.Tenants))
	for slug := range f.Tenants {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	var (
		result   []TenantZones
		problems []error
	)
	for _, slug := range slugs {
		tenant, err := kernel.NewTenantID(slug)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		tz := TenantZones{TenantID: tenant}
		for i, fz := range f.Tenants[slug] {
			z, err := zone.NewZone(zone.Params{
				TenantID: tenant,
				Name:     fz.Name,
				Position: i + 1,
				Matcher: zone.Matcher{
					CityParts:      fz.CityParts,
					PostalPrefixes: fz.PostalPrefixes,
					Cities:         fz.Cities,
				},
				FeeCents:      fz.FeeCents,
				MinOrderCents: fz.MinOrderCents,
			})
			if err != nil {
				problems = append(problems, fmt.Errorf("tenant %s zone #%d: %w", slug, i+1, err))
				continue
			}
			tz.Zones = append(tz.Zones, z)
		}
		result = append(result, tz)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return result, nil
}

// Seed replaces each tenant's zones, one transaction per tenant.
func Seed(ctx context.Context, uowFactory ports.UnitOfWorkFactory, tenants []TenantZones, logger *slog.Logger) error {
	for _, tz := range tenants {
		if err := seedTenant(ctx, uowFactory, tz); err != nil {
			return fmt.Errorf("seed zones for tenant %s: %w", tz.TenantID, err)
		}
		logger.InfoContext(ctx, "Delivery zones seeded", "tenant_id", tz.TenantID.String(), "zones", len(tz.Zones))
	}
	return nil
}

func seedTenant(ctx context.Context, uowFactory ports.UnitOfWorkFactory, tz TenantZones) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ZoneRepository().ReplaceForTenant(ctx, tz.TenantID, tz.Zones); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	return uow.Commit(ctx)
}
