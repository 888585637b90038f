package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// DeliveryStatus is the courier-side state of a delivery job. It is tracked
// separately from the order Status and never changes it on its own.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryCreated
	DeliveryAssigned
	DeliveryPickedUp
	DeliveryDelivered
	DeliveryCanceled
	DeliveryFailed
)

var deliveryStatusNames = map[DeliveryStatus]string{
	DeliveryUnknown:   "unknown",
	DeliveryCreated:   "created",
	DeliveryAssigned:  "assigned",
	DeliveryPickedUp:  "picked_up",
	DeliveryDelivered: "delivered",
	DeliveryCanceled:  "canceled",
	DeliveryFailed:    "failed",
}

var deliveryStatusAliases = map[string]DeliveryStatus{
	"PENDING":          DeliveryCreated,
	"COURIER_ASSIGNED": DeliveryAssigned,
	"PICKUP":           DeliveryPickedUp,
	"PICKEDUP":         DeliveryPickedUp,
	"IN_TRANSIT":       DeliveryPickedUp,
	"DROPPED_OFF":      DeliveryDelivered,
	"COMPLETED":        DeliveryDelivered,
	"CANCELLED":        DeliveryCanceled,
	"RETURNED":         DeliveryFailed,
}

// ParseDeliveryStatus maps a courier-provided status onto DeliveryStatus.
// Matching ignores case, spaces and hyphens.
func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	key := normalizeEnumKey(raw)
	for s, name := range deliveryStatusNames {
		if s != DeliveryUnknown && strings.ToUpper(name) == key {
			return s, nil
		}
	}
	if s, ok := deliveryStatusAliases[key]; ok {
		return s, nil
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus", fmt.Errorf("%q is not a known delivery status", raw))
}

// String returns the wire name of the status, e.g. "picked_up".
func (s DeliveryStatus) String() string {
	if name, ok := deliveryStatusNames[s]; ok {
		return name
	}
	return deliveryStatusNames[DeliveryUnknown]
}

// Validate rejects DeliveryUnknown and out-of-range values.
func (s DeliveryStatus) Validate() error {
	if s <= DeliveryUnknown || s > DeliveryFailed {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// IsTerminal reports whether the courier job is finished.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryCanceled || s == DeliveryFailed
}

func (s DeliveryStatus) rank() int {
	switch s {
	case DeliveryCreated:
		return 1
	case DeliveryAssigned:
		return 2
	case DeliveryPickedUp:
		return 3
	case DeliveryDelivered, DeliveryCanceled, DeliveryFailed:
		return 4
	default:
		return 0
	}
}

// Quote is the courier's price and ETA for a delivery job.
type Quote struct {
	FeeCents   int64
	ETAMinutes int
	Currency   string
}

// Delivery links an order to a courier job.
type Delivery struct {
	Provider    string
	JobID       string
	Status      DeliveryStatus
	TrackingURL string
	Quote       *Quote
}

// Validate requires the provider and job id and a known status.
func (d Delivery) Validate() error {
	var problems []error
	if strings.TrimSpace(d.Provider) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery.provider"))
	}
	if strings.TrimSpace(d.JobID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery.jobId"))
	}
	if err := d.Status.Validate(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

func (d *Delivery) clone() *Delivery {
	if d == nil {
		return nil
	}
	c := *d
	if d.Quote != nil {
		q := *d.Quote
		c.Quote = &q
	}
	return &c
}

// PaymentStatus is the payment state recorded on an order.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
)

// String returns "pending", "paid" or "unknown".
func (p PaymentStatus) String() string {
	switch p {
	case PaymentPending:
		return "pending"
	case PaymentPaid:
		return "paid"
	default:
		return "unknown"
	}
}

// Validate accepts only PaymentPending and PaymentPaid.
func (p PaymentStatus) Validate() error {
	if p != PaymentPending && p != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}
