package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand is sent by the payment collaborator once a payment is verified.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	paymentRef string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderID kernel.UUID, paymentRef string) (ConfirmPaymentCommand, error) {
	ref := strings.TrimSpace(paymentRef)
	var refErr error
	if ref == "" {
		refErr = errs.NewValueIsRequiredError("paymentRef")
	}
	if err := errors.Join(orderID.Validate(), refErr); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID:    orderID,
		paymentRef: ref,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID { return c.orderID }
func (c ConfirmPaymentCommand) PaymentRef() string { return c.paymentRef }
