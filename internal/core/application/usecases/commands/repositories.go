// Package commands contains the operations that change order state: creation,
// status advancement, payment confirmation, POS sync, courier dispatch, courier
// status updates and the reconciliation sweep.
//
// Every write to an order is a compare-and-swap on its version. Calls into the POS
// and the courier system happen outside any transaction: read state, call out, then
// CAS-write the result.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ZoneRepoFactory provides access to zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that read zones next to orders.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   zones, err := uow.ZoneRepository().ListByTenant(ctx, tenant)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ZoneRepoFactory
	}

	// UoWFactory creates new unit of work instances for order and zone operations.
	UoWFactory interface {
		Create() UoW
	}
)
