// Package zonerepo persists tenant delivery zones. Matcher lists are Postgres text arrays.
package zonerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"

	"github.com/lib/pq"
)

// ZoneDTO is a row of the delivery_zones table.
type ZoneDTO struct {
	ID             uint           `gorm:"primaryKey;autoIncrement"`
	TenantID       string         `gorm:"type:varchar(64);not null;index:idx_delivery_zones_tenant_position"`
	Name           string         `gorm:"type:varchar(128);not null"`
	Position       int            `gorm:"not null;index:idx_delivery_zones_tenant_position"`
	CityParts      pq.StringArray `gorm:"type:text[]"`
	PostalPrefixes pq.StringArray `gorm:"type:text[]"`
	Cities         pq.StringArray `gorm:"type:text[]"`
	FeeCents       int64          `gorm:"not null"`
	MinOrderCents  *int64
}

func (ZoneDTO) TableName() string {
	return "delivery_zones"
}

func fromDomain(z zone.Zone) ZoneDTO {
	p := z.Params()
	return ZoneDTO{
		TenantID:       p.TenantID.String(),
		Name:           p.Name,
		Position:       p.Position,
		CityParts:      pq.StringArray(p.Matcher.CityParts),
		PostalPrefixes: pq.StringArray(p.Matcher.PostalPrefixes),
		Cities:         pq.StringArray(p.Matcher.Cities),
		FeeCents:       p.FeeCents,
		MinOrderCents:  p.MinOrderCents,
	}
}

func toDomain(dto ZoneDTO) (zone.Zone, error) {
	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return zone.Zone{}, err
	}
	return zone.NewZone(zone.Params{
		TenantID: tenantID,
		Name:     dto.Name,
		Position: dto.Position,
		Matcher: zone.Matcher{
			CityParts:      dto.CityParts,
			PostalPrefixes: dto.PostalPrefixes,
			Cities:         dto.Cities,
		},
		FeeCents:      dto.FeeCents,
		MinOrderCents: dto.MinOrderCents,
	})
}
