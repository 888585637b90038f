package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/zonerepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or extends the orders and delivery_zones tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &zonerepo.ZoneDTO{})
}
