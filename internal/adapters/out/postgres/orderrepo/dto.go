// Package orderrepo persists order aggregates with GORM. Scalar fields map to columns;
// the item snapshot and the courier quote are stored as JSON documents.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the row of the orders table. Version is the compare-and-swap token.
// Timestamps come from the domain, so GORM's automatic tracking is off.
type OrderDTO struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID string         `gorm:"type:varchar(64);not null;index:idx_orders_tenant_status"`
	Status   int            `gorm:"not null;index:idx_orders_tenant_status"`
	Customer CustomerDTO    `gorm:"embedded;embeddedPrefix:customer_"`
	Address  AddressDTO     `gorm:"embedded;embeddedPrefix:address_"`
	Items    datatypes.JSON `gorm:"type:jsonb;not null"`

	SubtotalCents    int64 `gorm:"not null"`
	TaxCents         int64 `gorm:"not null"`
	DeliveryFeeCents int64 `gorm:"not null"`
	TotalCents       int64 `gorm:"not null"`

	PaymentRef    string  `gorm:"type:varchar(128)"`
	PaymentStatus int     `gorm:"not null"`
	POSSyncRef    *string `gorm:"column:pos_sync_ref;type:varchar(128)"`

	DeliveryProvider    *string        `gorm:"type:varchar(64)"`
	DeliveryJobID       *string        `gorm:"type:varchar(128);uniqueIndex"`
	DeliveryStatus      *int
	DeliveryTrackingURL *string
	DeliveryQuote       datatypes.JSON `gorm:"type:jsonb"`

	Version   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name  string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(64);not null"`
	Email string `gorm:"type:varchar(255)"`
}

type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(32)"`
	City       string `gorm:"type:varchar(128);not null"`
	CityPart   string `gorm:"type:varchar(128)"`
	Note       string
}

// ItemDTO and ModifierDTO are the JSON shape of the item snapshot.
type ItemDTO struct {
	ProductID      string        `json:"productId,omitempty"`
	Name           string        `json:"name"`
	UnitPriceCents int64         `json:"unitPriceCents"`
	Quantity       int           `json:"quantity"`
	Modifiers      []ModifierDTO `json:"modifiers,omitempty"`
}

type ModifierDTO struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

type QuoteDTO struct {
	FeeCents   int64  `json:"feeCents"`
	ETAMinutes int    `json:"etaMinutes"`
	Currency   string `json:"currency"`
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	p := o.Snapshot()

	items := make([]ItemDTO, 0, len(p.Items))
	for _, it := range p.Items {
		var mods []ModifierDTO
		for _, m := range it.Modifiers {
			mods = append(mods, ModifierDTO{Name: m.Name, PriceCents: m.PriceCents})
		}
		items = append(items, ItemDTO{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			Modifiers:      mods,
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:       p.ID.Bytes(),
		TenantID: p.TenantID.String(),
		Status:   int(p.Status),
		Customer: CustomerDTO{Name: p.Customer.Name, Phone: p.Customer.Phone, Email: p.Customer.Email},
		Address: AddressDTO{
			Street:     p.Address.Street(),
			PostalCode: p.Address.PostalCode(),
			City:       p.Address.City(),
			CityPart:   p.Address.CityPart(),
			Note:       p.Address.Note(),
		},
		Items:            datatypes.JSON(itemsJSON),
		SubtotalCents:    p.SubtotalCents,
		TaxCents:         p.TaxCents,
		DeliveryFeeCents: p.DeliveryFeeCents,
		TotalCents:       p.TotalCents,
		PaymentRef:       p.PaymentRef,
		PaymentStatus:    int(p.PaymentStatus),
		POSSyncRef:       p.POSSyncRef,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	if d := p.Delivery; d != nil {
		status := int(d.Status)
		dto.DeliveryProvider = &d.Provider
		dto.DeliveryJobID = &d.JobID
		dto.DeliveryStatus = &status
		dto.DeliveryTrackingURL = &d.TrackingURL
		if d.Quote != nil {
			quoteJSON, err := json.Marshal(QuoteDTO{
				FeeCents:   d.Quote.FeeCents,
				ETAMinutes: d.Quote.ETAMinutes,
				Currency:   d.Quote.Currency,
			})
			if err != nil {
				return OrderDTO{}, err
			}
			dto.DeliveryQuote = datatypes.JSON(quoteJSON)
		}
	}

	return dto, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(kernel.AddressParams{
		Street:     dto.Address.Street,
		PostalCode: dto.Address.PostalCode,
		City:       dto.Address.City,
		CityPart:   dto.Address.CityPart,
		Note:       dto.Address.Note,
	})
	if err != nil {
		return nil, err
	}

	var itemDTOs []ItemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(itemDTOs))
	for _, it := range itemDTOs {
		var mods []order.Modifier
		for _, m := range it.Modifiers {
			mods = append(mods, order.Modifier{Name: m.Name, PriceCents: m.PriceCents})
		}
		items = append(items, order.Item{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			Modifiers:      mods,
		})
	}

	var delivery *order.Delivery
	if dto.DeliveryJobID != nil {
		delivery = &order.Delivery{
			Provider:    deref(dto.DeliveryProvider),
			JobID:       *dto.DeliveryJobID,
			TrackingURL: deref(dto.DeliveryTrackingURL),
		}
		if dto.DeliveryStatus != nil {
			delivery.Status = order.DeliveryStatus(*dto.DeliveryStatus)
		}
		if len(dto.DeliveryQuote) > 0 && string(dto.DeliveryQuote) != "null" {
			var q QuoteDTO
			if err = json.Unmarshal(dto.DeliveryQuote, &q); err != nil {
				return nil, err
			}
			delivery.Quote = &order.Quote{FeeCents: q.FeeCents, ETAMinutes: q.ETAMinutes, Currency: q.Currency}
		}
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:               id,
		TenantID:         tenantID,
		Status:           order.Status(dto.Status),
		Customer:         order.Customer{Name: dto.Customer.Name, Phone: dto.Customer.Phone, Email: dto.Customer.Email},
		Address:          address,
		Items:            items,
		SubtotalCents:    dto.SubtotalCents,
		TaxCents:         dto.TaxCents,
		DeliveryFeeCents: dto.DeliveryFeeCents,
		TotalCents:       dto.TotalCents,
		PaymentRef:       dto.PaymentRef,
		PaymentStatus:    order.PaymentStatus(dto.PaymentStatus),
		POSSyncRef:       dto.POSSyncRef,
		Delivery:         delivery,
		Version:          dto.Version,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
