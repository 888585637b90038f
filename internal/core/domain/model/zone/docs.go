// Package zone models per-tenant delivery coverage areas.
//
// A Zone carries a matcher (city parts, postal-code prefixes, cities), a delivery
// fee and an optional minimum order. Matching is done on normalized text, see
// NormalizeText and NormalizePostalCode. Picking one zone out of a tenant's list
// is the job of services.ZoneResolver.
package zone
