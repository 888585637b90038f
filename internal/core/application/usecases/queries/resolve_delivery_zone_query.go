package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrResolveDeliveryZoneQueryIsNotConstructed = errors.New(
		"ResolveDeliveryZoneQuery must be created via NewResolveDeliveryZoneQuery constructor",
	)
	ErrValidateMinOrderQueryIsNotConstructed = errors.New(
		"ValidateMinOrderQuery must be created via NewValidateMinOrderQuery constructor",
	)
)

// ResolveDeliveryZoneQuery looks up the zone and fee for an address of a tenant.
//
// Example:
//
//	query, err := NewResolveDeliveryZoneQuery("pizza-roma", kernel.AddressParams{
//	    Street: "Na hrádzi 12", City: "Bratislava", CityPart: "Jarovce",
//	})
//	res, err := handler.Handle(ctx, query)
//	if errors.Is(err, zone.ErrNotCovered) {
//	    // "delivery unavailable here"
//	}
type ResolveDeliveryZoneQuery struct {
	tenantID kernel.TenantID
	address  kernel.Address

	guard guard.ConstructorGuard
}

func NewResolveDeliveryZoneQuery(tenantID string, address kernel.AddressParams) (ResolveDeliveryZoneQuery, error) {
	tenant, tenantErr := kernel.NewTenantID(tenantID)
	addr, addrErr := kernel.NewAddress(address)
	if err := errors.Join(tenantErr, addrErr); err != nil {
		return ResolveDeliveryZoneQuery{}, err
	}
	return ResolveDeliveryZoneQuery{tenantID: tenant, address: addr, guard: guard.NewConstructorGuard()}, nil
}

func (q ResolveDeliveryZoneQuery) Validate() error {
	return q.guard.Validate(ErrResolveDeliveryZoneQueryIsNotConstructed)
}

func (q ResolveDeliveryZoneQuery) TenantID() kernel.TenantID { return q.tenantID }
func (q ResolveDeliveryZoneQuery) Address() kernel.Address { return q.address }

// ResolveDeliveryZoneQueryResponse names the winning zone and the tier it matched on.
type ResolveDeliveryZoneQueryResponse struct {
	ZoneName      string
	FeeCents      int64
	MinOrderCents *int64
	MatchedBy     string
}

// ValidateMinOrderQuery checks an order total against the zone minimum for an address.
type ValidateMinOrderQuery struct {
	zoneQuery  ResolveDeliveryZoneQuery
	totalCents int64

	guard guard.ConstructorGuard
}

func NewValidateMinOrderQuery(tenantID string, address kernel.AddressParams, totalCents int64) (ValidateMinOrderQuery, error) {
	zoneQuery, err := NewResolveDeliveryZoneQuery(tenantID, address)
	var totalErr error
	if totalCents < 0 {
		totalErr = errs.NewValueIsOutOfRangeError("totalCents", totalCents, 0, "max int64")
	}
	if err = errors.Join(err, totalErr); err != nil {
		return ValidateMinOrderQuery{}, err
	}
	return ValidateMinOrderQuery{zoneQuery: zoneQuery, totalCents: totalCents, guard: guard.NewConstructorGuard()}, nil
}

func (q ValidateMinOrderQuery) Validate() error {
	return q.guard.Validate(ErrValidateMinOrderQueryIsNotConstructed)
}

func (q ValidateMinOrderQuery) TenantID() kernel.TenantID { return q.zoneQuery.TenantID() }
func (q ValidateMinOrderQuery) Address() kernel.Address { return q.zoneQuery.Address() }
func (q ValidateMinOrderQuery) TotalCents() int64 { return q.totalCents }

// ValidateMinOrderQueryResponse reports Valid = total >= (min ?? 0).
type ValidateMinOrderQueryResponse struct {
	Valid         bool
	MinOrderCents *int64
	ZoneName      string
}
