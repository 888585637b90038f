package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// ResolveDeliveryZoneQueryHandler answers zone lookups for checkout and operators.
// Both handlers return zone.ErrNotCovered when no zone matches.
type ResolveDeliveryZoneQueryHandler struct {
	zones    ZoneReader
	resolver services.ZoneResolver
}

func NewResolveDeliveryZoneQueryHandler(zones ZoneReader) ResolveDeliveryZoneQueryHandler {
	return ResolveDeliveryZoneQueryHandler{zones: zones, resolver: services.NewZoneResolver()}
}

func (h ResolveDeliveryZoneQueryHandler) Handle(
	ctx context.Context,
	query ResolveDeliveryZoneQuery,
) (ResolveDeliveryZoneQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveDeliveryZoneQueryResponse{}, err
	}

	zones, err := h.zones.ListByTenant(ctx, query.TenantID())
	if err != nil {
		return ResolveDeliveryZoneQueryResponse{}, err
	}
	res, err := h.resolver.Resolve(query.TenantID(), zones, query.Address())
	if err != nil {
		return ResolveDeliveryZoneQueryResponse{}, err
	}

	return ResolveDeliveryZoneQueryResponse{
		ZoneName:      res.ZoneName(),
		FeeCents:      res.FeeCents(),
		MinOrderCents: res.MinOrderCents(),
		MatchedBy:     res.Tier.String(),
	}, nil
}

// ValidateMinOrderQueryHandler checks a total against the zone minimum.
type ValidateMinOrderQueryHandler struct {
	zones    ZoneReader
	resolver services.ZoneResolver
}

func NewValidateMinOrderQueryHandler(zones ZoneReader) ValidateMinOrderQueryHandler {
	return ValidateMinOrderQueryHandler{zones: zones, resolver: services.NewZoneResolver()}
}

func (h ValidateMinOrderQueryHandler) Handle(
	ctx context.Context,
	query ValidateMinOrderQuery,
) (ValidateMinOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateMinOrderQueryResponse{}, err
	}

	zones, err := h.zones.ListByTenant(ctx, query.TenantID())
	if err != nil {
		return ValidateMinOrderQueryResponse{}, err
	}
	check, err := h.resolver.ValidateMinOrder(query.TenantID(), zones, query.Address(), query.TotalCents())
	if err != nil {
		return ValidateMinOrderQueryResponse{}, err
	}

	return ValidateMinOrderQueryResponse{
		Valid:         check.Valid,
		MinOrderCents: check.MinOrderCents,
		ZoneName:      check.ZoneName,
	}, nil
}
