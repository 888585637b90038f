package zonerepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"

	"gorm.io/gorm"
)

// GormZoneRepository implements ports.ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// ListByTenant returns zones by position; insertion order breaks ties.
func (r *GormZoneRepository) ListByTenant(ctx context.Context, tenantID kernel.TenantID) ([]zone.Zone, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ZoneDTO
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID.String()).
		Order("position, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	zones := make([]zone.Zone, 0, len(dtos))
	for _, dto := range dtos {
		z, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// ReplaceForTenant deletes the tenant's zones and inserts the given list.
// Run it inside a unit of work so readers never see an empty list.
func (r *GormZoneRepository) ReplaceForTenant(ctx context.Context, tenantID kernel.TenantID, zones []zone.Zone) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	dtos := make([]ZoneDTO, 0, len(zones))
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(z))
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("tenant_id = ?", tenantID.String()).Delete(&ZoneDTO{}).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	return db.Create(&dtos).Error
}
