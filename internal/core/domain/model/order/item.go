package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Modifier is a priced add-on attached to a line item (extra cheese, no onion).
// Its price is added to the unit price once per unit.
type Modifier struct {
	Name       string
	PriceCents int64
}

// Item is a snapshot of a product as it was ordered. Names and prices are
// copied from the catalog at order time and never re-read afterwards.
type Item struct {
	ProductID      string
	Name           string
	UnitPriceCents int64
	Quantity       int
	Modifiers      []Modifier
}

// LineTotalCents returns (unit price + sum of modifiers) * quantity.
func (i Item) LineTotalCents() int64 {
	unit := i.UnitPriceCents
	for _, m := range i.Modifiers {
		unit += m.PriceCents
	}
	return unit * int64(i.Quantity)
}

// Validate checks item invariants. pos is the index used in error messages.
func (i Item) Validate(pos int) error {
	var problems []error
	if strings.TrimSpace(i.Name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].name", pos)))
	}
	if i.Quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("items[%d].quantity", pos), fmt.Errorf("%d is not greater than 0", i.Quantity)))
	}
	if i.UnitPriceCents < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("items[%d].unitPriceCents", pos), fmt.Errorf("%d is negative", i.UnitPriceCents)))
	}
	for j, m := range i.Modifiers {
		if strings.TrimSpace(m.Name) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].modifiers[%d].name", pos, j)))
		}
		if m.PriceCents < 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].modifiers[%d].priceCents", pos, j), fmt.Errorf("%d is negative", m.PriceCents)))
		}
	}
	return errors.Join(problems...)
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		if it.Modifiers != nil {
			out[i].Modifiers = append([]Modifier(nil), it.Modifiers...)
		}
	}
	return out
}

// Customer is the contact snapshot taken at order time.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Validate requires a name and a phone number; email is optional.
func (c Customer) Validate() error {
	var problems []error
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer.name"))
	}
	if strings.TrimSpace(c.Phone) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer.phone"))
	}
	return errors.Join(problems...)
}
