package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReconcileOrdersCommandIsNotConstructed = errors.New(
	"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
)

const defaultReconcileLimit = 500

// ReconcileOrdersCommand sweeps orders untouched for at least staleAfter.
type ReconcileOrdersCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration
	limit      int

	guard guard.ConstructorGuard
}

// NewReconcileOrdersCommand uses a default batch size when limit is not positive.
func NewReconcileOrdersCommand(staleAfter time.Duration, limit int) (ReconcileOrdersCommand, error) {
	if staleAfter <= 0 {
		return ReconcileOrdersCommand{}, errs.NewValueIsOutOfRangeError("staleAfter", staleAfter, "1ns", "max duration")
	}
	if limit <= 0 {
		limit = defaultReconcileLimit
	}
	return ReconcileOrdersCommand{staleAfter: staleAfter, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}

func (c ReconcileOrdersCommand) StaleAfter() time.Duration { return c.staleAfter }
func (c ReconcileOrdersCommand) Limit() int { return c.limit }
