package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSyncOrderToPOSCommandIsNotConstructed = errors.New(
	"SyncOrderToPOSCommand must be created via NewSyncOrderToPOSCommand constructor",
)

// SyncOrderToPOSCommand asks for the order to be present in the POS exactly once.
type SyncOrderToPOSCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSyncOrderToPOSCommand(orderID kernel.UUID) (SyncOrderToPOSCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SyncOrderToPOSCommand{}, err
	}
	return SyncOrderToPOSCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SyncOrderToPOSCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrderToPOSCommandIsNotConstructed)
}

func (c SyncOrderToPOSCommand) OrderID() kernel.UUID { return c.orderID }
