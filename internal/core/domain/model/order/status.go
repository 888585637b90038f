package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel unwrapped from InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
//
//	Pending ──> Paid ──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	   │          │          │           │              │
//	   └──────────┴──────────┴─────┬─────┴──────────────┘
//	                               v
//	                            Canceled
//
// Only the immediate successor is reachable; Canceled is reachable from every
// non-terminal state. Delivered and Canceled are terminal.
type Status int

const (
	// Unknown catches uninitialized values and is never stored.
	Unknown Status = iota
	Pending
	Paid
	Preparing
	Ready
	OutForDelivery
	Delivered
	Canceled
)

var statusNames = map[Status]string{
	Unknown:        "UNKNOWN",
	Pending:        "PENDING",
	Paid:           "PAID",
	Preparing:      "PREPARING",
	Ready:          "READY",
	OutForDelivery: "OUT_FOR_DELIVERY",
	Delivered:      "DELIVERED",
	Canceled:       "CANCELED",
}

// statusAliases maps spellings seen in older clients onto the closed enumeration.
var statusAliases = map[string]Status{
	"CANCELLED":        Canceled,
	"OUTFORDELIVERY":   OutForDelivery,
	"IN_DELIVERY":      OutForDelivery,
	"DELIVERING":       OutForDelivery,
	"IN_PREPARATION":   Preparing,
	"READY_FOR_PICKUP": Ready,
}

// successors is the canonical forward ordering.
var successors = map[Status]Status{
	Pending:        Paid,
	Paid:           Preparing,
	Preparing:      Ready,
	Ready:          OutForDelivery,
	OutForDelivery: Delivered,
}

// InvalidTransitionError reports a rejected status change with both ends of the request.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("%s: %s -> %s (%s is terminal)", ErrInvalidTransition, e.From, e.To, e.From)
	}
	next, _ := e.From.Next()
	return fmt.Sprintf("%s: %s -> %s (allowed: %s or %s)", ErrInvalidTransition, e.From, e.To, next, Canceled)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ParseStatus normalizes a status string into the closed enumeration.
// Case, surrounding whitespace, spaces and hyphens are ignored, so
// "OUT_FOR_DELIVERY", "out for delivery" and "Out-For-Delivery" are equal.
func ParseStatus(raw string) (Status, error) {
	key := normalizeEnumKey(raw)
	for s, name := range statusNames {
		if s != Unknown && name == key {
			return s, nil
		}
	}
	if s, ok := statusAliases[key]; ok {
		return s, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", raw))
}

// Validate checks that s is one of the defined states (Unknown excluded).
func (s Status) Validate() error {
	if s <= Unknown || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// Next returns the canonical immediate successor, if any.
func (s Status) Next() (Status, bool) {
	next, ok := successors[s]
	return next, ok
}

// HasReachedPayment reports whether the order is paid and still alive,
// i.e. Paid or any later non-canceled state. External sync requires it.
func (s Status) HasReachedPayment() bool {
	return s >= Paid && s <= Delivered
}

// Advance returns the requested status when it is the immediate successor of s,
// or Canceled from a non-terminal state. It never clamps or reorders.
func (s Status) Advance(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, &InvalidTransitionError{From: s, To: to}
	}
	if to == Canceled {
		return Canceled, nil
	}
	if next, ok := s.Next(); ok && next == to {
		return to, nil
	}
	return Unknown, &InvalidTransitionError{From: s, To: to}
}

func normalizeEnumKey(raw string) string {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	return key
}
