package zone

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrNotCovered means the address falls outside every configured zone.
	// It is a business outcome, not a fault: the caller must refuse delivery.
	ErrNotCovered = errors.New("delivery unavailable here: address is not covered by any delivery zone")

	ErrZoneIsNotConstructed = errors.New("zone must be created via NewZone")
)

// Tier is a match precedence level. Lower values win.
type Tier int

const (
	TierNone Tier = iota
	TierCityPart
	TierPostalPrefix
	TierCity
)

// Tiers lists the precedence levels from most to least specific.
var Tiers = []Tier{TierCityPart, TierPostalPrefix, TierCity}

// String returns the tier name reported as matchedBy.
func (t Tier) String() string {
	switch t {
	case TierCityPart:
		return "city_part"
	case TierPostalPrefix:
		return "postal_prefix"
	case TierCity:
		return "city"
	default:
		return "none"
	}
}

// Matcher lists the criteria of a zone. Any criterion may be empty, but not all of them.
type Matcher struct {
	CityParts      []string
	PostalPrefixes []string
	Cities         []string
}

// Params describes a zone as configured by an operator.
type Params struct {
	TenantID      kernel.TenantID
	Name          string
	Position      int
	Matcher       Matcher
	FeeCents      int64
	MinOrderCents *int64
}

// Zone is an immutable delivery coverage rule.
type Zone struct {
	tenantID      kernel.TenantID
	name          string
	position      int
	matcher       Matcher
	feeCents      int64
	minOrderCents *int64

	cityParts      map[string]struct{}
	postalPrefixes []string
	cities         map[string]struct{}

	guard guard.ConstructorGuard
}

// NewZone validates p and precomputes normalized matcher keys.
//
// Parameters:
//   - p.TenantID: Owning restaurant
//   - p.Name: Display name (required)
//   - p.Position: Priority among the tenant's zones; lower matches first
//   - p.Matcher: At least one city part, postal prefix or city
//   - p.FeeCents: Non-negative delivery fee
//   - p.MinOrderCents: Optional non-negative minimum order
//
// Returns:
//   - Zone: The constructed zone
//   - error: Every validation problem joined with errors.Join
func NewZone(p Params) (Zone, error) {
	var problems []error
	if err := p.TenantID.Validate(); err != nil {
		problems = append(problems, err)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("zone name"))
	}
	if p.Position < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("zone position", fmt.Errorf("%d is negative", p.Position)))
	}
	if p.FeeCents < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("zone feeCents", fmt.Errorf("%d is negative", p.FeeCents)))
	}
	if p.MinOrderCents != nil && *p.MinOrderCents < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"zone minOrderCents", fmt.Errorf("%d is negative", *p.MinOrderCents)))
	}

	z := Zone{
		tenantID:  p.TenantID,
		name:      name,
		position:  p.Position,
		feeCents:  p.FeeCents,
		cityParts: make(map[string]struct{}),
		cities:    make(map[string]struct{}),
		guard:     guard.NewConstructorGuard(),
	}
	for _, cp := range p.Matcher.CityParts {
		if key := NormalizeText(cp); key != "" {
			z.cityParts[key] = struct{}{}
			z.matcher.CityParts = append(z.matcher.CityParts, strings.TrimSpace(cp))
		}
	}
	for _, prefix := range p.Matcher.PostalPrefixes {
		if key := NormalizePostalCode(prefix); key != "" {
			z.postalPrefixes = append(z.postalPrefixes, key)
			z.matcher.PostalPrefixes = append(z.matcher.PostalPrefixes, key)
		}
	}
	for _, c := range p.Matcher.Cities {
		if key := NormalizeText(c); key != "" {
			z.cities[key] = struct{}{}
			z.matcher.Cities = append(z.matcher.Cities, strings.TrimSpace(c))
		}
	}
	if len(z.cityParts) == 0 && len(z.postalPrefixes) == 0 && len(z.cities) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("zone matcher (city parts, postal prefixes or cities)"))
	}
	if err := errors.Join(problems...); err != nil {
		return Zone{}, err
	}

	if p.MinOrderCents != nil {
		m := *p.MinOrderCents
		z.minOrderCents = &m
	}
	return z, nil
}

// Validate returns ErrZoneIsNotConstructed unless the zone came from NewZone.
func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// TenantID returns the restaurant that owns the zone.
func (z Zone) TenantID() kernel.TenantID { return z.tenantID }

// Name returns the display name.
func (z Zone) Name() string { return z.name }

// Position returns the priority among the tenant's zones.
func (z Zone) Position() int { return z.position }

// FeeCents returns the delivery fee charged in this zone.
func (z Zone) FeeCents() int64 { return z.feeCents }

// MinOrderCents returns the configured minimum order, if any.
func (z Zone) MinOrderCents() (int64, bool) {
	if z.minOrderCents == nil {
		return 0, false
	}
	return *z.minOrderCents, true
}

// Matcher returns the configured criteria (trimmed, postal prefixes normalized).
func (z Zone) Matcher() Matcher {
	return Matcher{
		CityParts:      append([]string(nil), z.matcher.CityParts...),
		PostalPrefixes: append([]string(nil), z.matcher.PostalPrefixes...),
		Cities:         append([]string(nil), z.matcher.Cities...),
	}
}

// Params returns the zone in the form accepted by NewZone.
func (z Zone) Params() Params {
	var minOrder *int64
	if z.minOrderCents != nil {
		m := *z.minOrderCents
		minOrder = &m
	}
	return Params{
		TenantID:      z.tenantID,
		Name:          z.name,
		Position:      z.position,
		Matcher:       z.Matcher(),
		FeeCents:      z.feeCents,
		MinOrderCents: minOrder,
	}
}

// Matches reports whether the address satisfies this zone on the given tier.
// Only the single criterion of that tier is consulted.
func (z Zone) Matches(tier Tier, a Address) bool {
	switch tier {
	case TierCityPart:
		_, ok := z.cityParts[a.CityPart]
		return a.CityPart != "" && ok
	case TierPostalPrefix:
		if a.PostalCode == "" {
			return false
		}
		for _, prefix := range z.postalPrefixes {
			if strings.HasPrefix(a.PostalCode, prefix) {
				return true
			}
		}
		return false
	case TierCity:
		_, ok := z.cities[a.City]
		return a.City != "" && ok
	default:
		return false
	}
}

// Address is the normalized form of kernel.Address used for matching.
type Address struct {
	PostalCode string
	City       string
	CityPart   string
}

// NormalizeAddress extracts and normalizes the fields used for matching.
func NormalizeAddress(a kernel.Address) Address {
	return Address{
		PostalCode: NormalizePostalCode(a.PostalCode()),
		City:       NormalizeText(a.City()),
		CityPart:   NormalizeText(a.CityPart()),
	}
}

// Resolution is the outcome of a successful zone lookup.
type Resolution struct {
	Zone Zone
	Tier Tier
}

func (r Resolution) ZoneName() string { return r.Zone.Name() }
func (r Resolution) FeeCents() int64 { return r.Zone.FeeCents() }

// MinOrderCents returns the zone minimum or nil when the zone has none.
func (r Resolution) MinOrderCents() *int64 {
	if m, ok := r.Zone.MinOrderCents(); ok {
		return &m
	}
	return nil
}

// MinOrderCheck is the result of validating an order total against a zone minimum.
type MinOrderCheck struct {
	Valid         bool
	MinOrderCents *int64
	ZoneName      string
}

// CheckMinOrder returns Valid = total >= (min ?? 0).
func (r Resolution) CheckMinOrder(totalCents int64) MinOrderCheck {
	minOrder := r.MinOrderCents()
	threshold := int64(0)
	if minOrder != nil {
		threshold = *minOrder
	}
	return MinOrderCheck{
		Valid:         totalCents >= threshold,
		MinOrderCents: minOrder,
		ZoneName:      r.ZoneName(),
	}
}
