package http

import (
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/generated/servers"
)

// orderIDFromAPI returns the zero UUID for uuid.Nil, which command constructors reject.
func orderIDFromAPI(id servers.OrderId) kernel.UUID {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}
	}
	return parsed
}

func customerFromAPI(c servers.Customer) order.Customer {
	return order.Customer{Name: c.Name, Phone: c.Phone, Email: deref(c.Email)}
}

func addressFromAPI(a servers.Address) kernel.AddressParams {
	return kernel.AddressParams{
		Street:     a.Street,
		PostalCode: deref(a.PostalCode),
		City:       a.City,
		CityPart:   deref(a.CityPart),
		Note:       deref(a.Note),
	}
}

func itemsFromAPI(items []servers.Item) []order.Item {
	result := make([]order.Item, 0, len(items))
	for _, it := range items {
		item := order.Item{
			ProductID:      deref(it.ProductId),
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		}
		if it.Modifiers != nil {
			for _, m := range *it.Modifiers {
				item.Modifiers = append(item.Modifiers, order.Modifier{Name: m.Name, PriceCents: m.PriceCents})
			}
		}
		result = append(result, item)
	}
	return result
}

func orderToAPI(o *order.Order) servers.Order {
	ref, _ := o.POSSyncRef()
	return orderViewToAPI(queries.GetOrderQueryResponse{
		ID:               o.ID(),
		TenantID:         o.TenantID().String(),
		Status:           o.Status(),
		Customer:         o.Customer(),
		Address:          o.Address().Params(),
		Items:            o.Items(),
		SubtotalCents:    o.SubtotalCents(),
		TaxCents:         o.TaxCents(),
		DeliveryFeeCents: o.DeliveryFeeCents(),
		TotalCents:       o.TotalCents(),
		PaymentStatus:    o.PaymentStatus(),
		PaymentRef:       o.PaymentRef(),
		POSSyncRef:       ref,
		Delivery:         o.Delivery(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	})
}

func orderViewToAPI(v queries.GetOrderQueryResponse) servers.Order {
	result := servers.Order{
		Id:               v.ID.Bytes(),
		TenantId:         v.TenantID,
		Status:           v.Status.String(),
		Customer:         customerToAPI(v.Customer),
		Address:          addressToAPI(v.Address),
		Items:            itemsToAPI(v.Items),
		SubtotalCents:    v.SubtotalCents,
		TaxCents:         v.TaxCents,
		DeliveryFeeCents: v.DeliveryFeeCents,
		TotalCents:       v.TotalCents,
		PaymentStatus:    v.PaymentStatus.String(),
		PaymentRef:       ptr(v.PaymentRef),
		PosSyncRef:       ptr(v.POSSyncRef),
		Version:          v.Version,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.Delivery != nil {
		d := deliveryToAPI(*v.Delivery)
		result.Delivery = &d
	}
	return result
}

func customerToAPI(c order.Customer) servers.Customer {
	return servers.Customer{Name: c.Name, Phone: c.Phone, Email: ptr(c.Email)}
}

func addressToAPI(a kernel.AddressParams) servers.Address {
	return servers.Address{
		Street:     a.Street,
		PostalCode: ptr(a.PostalCode),
		City:       a.City,
		CityPart:   ptr(a.CityPart),
		Note:       ptr(a.Note),
	}
}

func itemsToAPI(items []order.Item) []servers.Item {
	result := make([]servers.Item, 0, len(items))
	for _, it := range items {
		item := servers.Item{
			ProductId:      ptr(it.ProductID),
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		}
		if len(it.Modifiers) > 0 {
			modifiers := make([]servers.Modifier, 0, len(it.Modifiers))
			for _, m := range it.Modifiers {
				modifiers = append(modifiers, servers.Modifier{Name: m.Name, PriceCents: m.PriceCents})
			}
			item.Modifiers = &modifiers
		}
		result = append(result, item)
	}
	return result
}

func deliveryToAPI(d order.Delivery) servers.Delivery {
	result := servers.Delivery{
		Provider:    d.Provider,
		JobId:       d.JobID,
		Status:      d.Status.String(),
		TrackingUrl: ptr(d.TrackingURL),
	}
	if d.Quote != nil {
		result.Quote = &servers.Quote{
			FeeCents:   d.Quote.FeeCents,
			EtaMinutes: d.Quote.ETAMinutes,
			Currency:   d.Quote.Currency,
		}
	}
	return result
}

func trackingToAPI(s ports.TrackingSnapshot) servers.Tracking {
	return servers.Tracking{
		OrderId:        s.OrderID,
		Status:         s.Status,
		DeliveryStatus: ptr(s.DeliveryStatus),
		TrackingUrl:    ptr(s.TrackingURL),
		UpdatedAt:      s.UpdatedAt,
	}
}

// ptr returns nil for the empty string so optional fields are omitted.
func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
