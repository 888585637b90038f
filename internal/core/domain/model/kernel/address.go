package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the delivery address snapshot captured at checkout.
// Street and city are mandatory; postal code and city part are optional, because
// some zones are configured by city part only.
type Address struct {
	street     string
	postalCode string
	city       string
	cityPart   string
	note       string
	guard      guard.ConstructorGuard
}

// AddressParams carries raw address input.
type AddressParams struct {
	Street     string
	PostalCode string
	City       string
	CityPart   string
	Note       string
}

func NewAddress(p AddressParams) (Address, error) {
	a := Address{
		street:     strings.TrimSpace(p.Street),
		postalCode: strings.TrimSpace(p.PostalCode),
		city:       strings.TrimSpace(p.City),
		cityPart:   strings.TrimSpace(p.CityPart),
		note:       strings.TrimSpace(p.Note),
		guard:      guard.NewConstructorGuard(),
	}

	var problems []error
	if a.street == "" {
		problems = append(problems, errs.NewValueIsRequiredError("street"))
	}
	if a.city == "" {
		problems = append(problems, errs.NewValueIsRequiredError("city"))
	}
	if err := errors.Join(problems...); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string { return a.street }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) City() string { return a.city }
func (a Address) CityPart() string { return a.cityPart }
func (a Address) Note() string { return a.note }

// Params returns the raw fields, used by adapters when persisting the snapshot.
func (a Address) Params() AddressParams {
	return AddressParams{
		Street:     a.street,
		PostalCode: a.postalCode,
		City:       a.city,
		CityPart:   a.cityPart,
		Note:       a.note,
	}
}
