package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand asks for exactly one courier job for the order.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(orderID kernel.UUID) (CreateDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateDeliveryCommand{}, err
	}
	return CreateDeliveryCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) OrderID() kernel.UUID { return c.orderID }
