package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand carries a courier status report for an order's job.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	jobID       string
	status      order.DeliveryStatus
	trackingURL string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand normalizes the courier's free-form status.
func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	jobID string,
	rawStatus string,
	trackingURL string,
) (UpdateDeliveryStatusCommand, error) {
	jobID = strings.TrimSpace(jobID)
	var jobErr error
	if jobID == "" {
		jobErr = errs.NewValueIsRequiredError("jobId")
	}
	status, statusErr := order.ParseDeliveryStatus(rawStatus)

	if err := errors.Join(orderID.Validate(), jobErr, statusErr); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		orderID:     orderID,
		jobID:       jobID,
		status:      status,
		trackingURL: strings.TrimSpace(trackingURL),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateDeliveryStatusCommand) JobID() string { return c.jobID }
func (c UpdateDeliveryStatusCommand) Status() order.DeliveryStatus { return c.status }
func (c UpdateDeliveryStatusCommand) TrackingURL() string { return c.trackingURL }
