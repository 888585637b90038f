package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order from a checkout snapshot.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "pizza-roma", customer, addressParams, items, 230)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tenantID kernel.TenantID
	customer order.Customer
	address  kernel.Address
	items    []order.Item
	taxCents int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and the address. Item and customer
// rules are enforced by order.NewOrder.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID string,
	customer order.Customer,
	address kernel.AddressParams,
	items []order.Item,
	taxCents int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: customer,
		items:    items,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setAddress(address),
		cmd.setTaxCents(taxCents),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) TenantID() kernel.TenantID { return c.tenantID }
func (c CreateOrderCommand) Customer() order.Customer { return c.customer }
func (c CreateOrderCommand) Address() kernel.Address { return c.address }
func (c CreateOrderCommand) Items() []order.Item { return c.items }
func (c CreateOrderCommand) TaxCents() int64 { return c.taxCents }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(raw string) error {
	tenantID, err := kernel.NewTenantID(raw)
	if err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setAddress(p kernel.AddressParams) error {
	address, err := kernel.NewAddress(p)
	if err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setTaxCents(taxCents int64) error {
	if taxCents < 0 {
		return errs.NewValueIsOutOfRangeError("taxCents", taxCents, 0, "max int64")
	}
	c.taxCents = taxCents
	return nil
}
