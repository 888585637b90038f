package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrExternalRefConflict is returned when an append-only identifier (POS reference,
	// courier job id, payment reference) is already set to a different value.
	ErrExternalRefConflict = errors.New("external reference already set to a different value")

	// ErrDeliveryNotAttached is returned when a courier update arrives for an order
	// that was never dispatched.
	ErrDeliveryNotAttached = errors.New("order has no delivery attached")

	// ErrTotalMismatch is returned by RestoreOrder when stored amounts break
	// total == subtotal + tax + delivery fee.
	ErrTotalMismatch = errors.New("total does not equal subtotal + tax + delivery fee")
)

// Order is the aggregate root of the fulfillment core. It owns a customer purchase
// from checkout to a terminal state and is never deleted.
//
// Order follows these invariants:
//   - id and tenant are immutable
//   - customer, address and items are snapshots taken at creation and never change
//   - totalCents == subtotalCents + taxCents + deliveryFeeCents, and no method changes amounts
//   - status only moves to its immediate successor, or to Canceled from a non-terminal state
//   - posSyncRef and delivery.JobID are append-only: once set they are never cleared or replaced
//
// version is the optimistic-concurrency token. Domain methods never touch it; repositories
// compare it on write and bump it through IncrementVersion after a successful write.
type Order struct {
	id       kernel.UUID
	tenantID kernel.TenantID
	status   Status

	customer Customer
	address  kernel.Address
	items    []Item

	subtotalCents    int64
	taxCents         int64
	deliveryFeeCents int64
	totalCents       int64

	paymentRef    string
	paymentStatus PaymentStatus

	// posSyncRef is the POS-side order id. Its presence is the duplicate-submission guard.
	posSyncRef *string

	// delivery is nil until a courier job was created. Its JobID is the re-dispatch guard.
	delivery *Delivery

	version   int64
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrderParams carries the checkout snapshot for NewOrder.
type NewOrderParams struct {
	ID               kernel.UUID
	TenantID         kernel.TenantID
	Customer         Customer
	Address          kernel.Address
	Items            []Item
	TaxCents         int64
	DeliveryFeeCents int64
	CreatedAt        time.Time
}

// NewOrder creates a PENDING order with unpaid payment status. The subtotal is computed
// from the item snapshot and the total is derived from it; both are fixed from then on.
//
// Parameters:
//   - p.ID: Order identifier (must be a valid UUID)
//   - p.TenantID: Owning restaurant
//   - p.Customer: Contact details (name and phone required)
//   - p.Address: Validated delivery address
//   - p.Items: Non-empty item snapshot; copied, never aliased
//   - p.TaxCents, p.DeliveryFeeCents: Non-negative charges added to the subtotal
//   - p.CreatedAt: Creation time; zero means now
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Every validation problem joined with errors.Join
//
// Example:
//
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID:       kernel.NewUUID(),
//	    TenantID: tenant,
//	    Customer: order.Customer{Name: "Jana", Phone: "+421900111222"},
//	    Address:  address,
//	    Items:    []order.Item{{Name: "Margherita", UnitPriceCents: 890, Quantity: 2}},
//	    TaxCents: 178,
//	})
func NewOrder(p NewOrderParams) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setTenantID(p.TenantID),
		o.setCustomer(p.Customer),
		o.setAddress(p.Address),
		o.setItems(p.Items),
		o.setCharges(p.TaxCents, p.DeliveryFeeCents),
	); err != nil {
		return nil, err
	}

	var subtotal int64
	for _, it := range o.items {
		subtotal += it.LineTotalCents()
	}
	o.subtotalCents = subtotal
	o.totalCents = subtotal + o.taxCents + o.deliveryFeeCents

	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	o.createdAt = created.UTC()
	o.updatedAt = o.createdAt

	return o, nil
}

// RestoreOrderParams is the full persisted state of an order. It is produced by
// Snapshot and consumed by RestoreOrder.
type RestoreOrderParams struct {
	ID               kernel.UUID
	TenantID         kernel.TenantID
	Status           Status
	Customer         Customer
	Address          kernel.Address
	Items            []Item
	SubtotalCents    int64
	TaxCents         int64
	DeliveryFeeCents int64
	TotalCents       int64
	PaymentRef       string
	PaymentStatus    PaymentStatus
	POSSyncRef       *string
	Delivery         *Delivery
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rehydrates an order from storage. Stored amounts are taken as-is but
// the total invariant is re-checked, so a corrupted row never reaches the domain.
//
// Parameters:
//   - p: Full persisted state, usually produced by Snapshot
//
// Returns:
//   - *Order: The restored order carrying p.Version as its compare-and-swap token
//   - error: Joined validation errors when any stored field is invalid
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		subtotalCents: p.SubtotalCents,
		totalCents:    p.TotalCents,
		paymentRef:    p.PaymentRef,
		version:       p.Version,
		createdAt:     p.CreatedAt.UTC(),
		updatedAt:     p.UpdatedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	problems := []error{
		o.setID(p.ID),
		o.setTenantID(p.TenantID),
		o.setCustomer(p.Customer),
		o.setAddress(p.Address),
		o.setItems(p.Items),
		o.setCharges(p.TaxCents, p.DeliveryFeeCents),
		p.Status.Validate(),
		p.PaymentStatus.Validate(),
	}
	if p.SubtotalCents+p.TaxCents+p.DeliveryFeeCents != p.TotalCents {
		problems = append(problems, fmt.Errorf("%w: %d + %d + %d != %d",
			ErrTotalMismatch, p.SubtotalCents, p.TaxCents, p.DeliveryFeeCents, p.TotalCents))
	}
	if p.POSSyncRef != nil && strings.TrimSpace(*p.POSSyncRef) == "" {
		problems = append(problems, errs.NewValueIsInvalidError("posSyncRef"))
	}
	if p.Delivery != nil {
		problems = append(problems, p.Delivery.Validate())
	}
	if p.Version < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("version", p.Version, 0, "max int64"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	o.status = p.Status
	o.paymentStatus = p.PaymentStatus
	if p.POSSyncRef != nil {
		ref := *p.POSSyncRef
		o.posSyncRef = &ref
	}
	o.delivery = p.Delivery.clone()

	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TenantID returns the restaurant that owns the order.
func (o *Order) TenantID() kernel.TenantID { return o.tenantID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Customer returns the contact details captured at checkout.
func (o *Order) Customer() Customer { return o.customer }

// Address returns the delivery address.
func (o *Order) Address() kernel.Address { return o.address }

// SubtotalCents returns the sum of all item line totals.
func (o *Order) SubtotalCents() int64 { return o.subtotalCents }

// TaxCents returns the tax charged on the order.
func (o *Order) TaxCents() int64 { return o.taxCents }

// DeliveryFeeCents returns the zone fee charged for delivery.
func (o *Order) DeliveryFeeCents() int64 { return o.deliveryFeeCents }

// TotalCents returns subtotal + tax + delivery fee.
func (o *Order) TotalCents() int64 { return o.totalCents }

// PaymentRef returns the payment reference, empty until payment is confirmed.
func (o *Order) PaymentRef() string { return o.paymentRef }

// PaymentStatus returns whether the payment has been confirmed.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Version returns the optimistic-concurrency token of the last stored state.
func (o *Order) Version() int64 { return o.version }

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last state change in UTC.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a copy of the item snapshot.
func (o *Order) Items() []Item {
	return cloneItems(o.items)
}

// POSSyncRef returns the POS reference and whether it is set.
func (o *Order) POSSyncRef() (string, bool) {
	if o.posSyncRef == nil {
		return "", false
	}
	return *o.posSyncRef, true
}

// Delivery returns a copy of the delivery sub-record, or nil before dispatch.
func (o *Order) Delivery() *Delivery {
	return o.delivery.clone()
}

// IsDispatched reports whether a courier job id is recorded.
func (o *Order) IsDispatched() bool {
	return o.delivery != nil && o.delivery.JobID != ""
}

// Advance moves the order to the requested status.
//
// The request succeeds only when to is the immediate successor of the current status,
// or to is Canceled and the current status is not terminal. Anything else returns an
// *InvalidTransitionError and leaves the order untouched.
func (o *Order) Advance(to Status, now time.Time) error {
	next, err := o.status.Advance(to)
	if err != nil {
		return err
	}
	o.status = next
	o.touch(now)
	return nil
}

// ConfirmPayment records the payment reference and advances PENDING to PAID.
//
// An order an operator already moved to PAID or later only gets the reference
// recorded, its status is left alone. Replaying the same reference on an already
// paid order is a no-op and reports changed == false. A different reference is
// rejected with ErrExternalRefConflict. A canceled order fails with an
// *InvalidTransitionError.
func (o *Order) ConfirmPayment(paymentRef string, now time.Time) (bool, error) {
	ref := strings.TrimSpace(paymentRef)
	if ref == "" {
		return false, errs.NewValueIsRequiredError("paymentRef")
	}
	if o.paymentStatus == PaymentPaid {
		if o.paymentRef == ref {
			return false, nil
		}
		return false, fmt.Errorf("%w: paymentRef is %q", ErrExternalRefConflict, o.paymentRef)
	}

	if !o.status.HasReachedPayment() {
		next, err := o.status.Advance(Paid)
		if err != nil {
			return false, err
		}
		o.status = next
	}
	o.paymentRef = ref
	o.paymentStatus = PaymentPaid
	o.touch(now)
	return true, nil
}

// AttachPOSRef stores the POS reference once. The same value again is a no-op;
// a different value is rejected. Status is not checked: a reference returned for an
// order that got canceled in the meantime is still recorded so it can be reconciled.
func (o *Order) AttachPOSRef(ref string, now time.Time) (bool, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false, errs.NewValueIsRequiredError("posSyncRef")
	}
	if o.posSyncRef != nil {
		if *o.posSyncRef == ref {
			return false, nil
		}
		return false, fmt.Errorf("%w: posSyncRef is %q", ErrExternalRefConflict, *o.posSyncRef)
	}
	o.posSyncRef = &ref
	o.touch(now)
	return true, nil
}

// AttachDelivery stores the courier job once, with the same no-op and conflict
// semantics as AttachPOSRef keyed on the job id.
func (o *Order) AttachDelivery(d Delivery, now time.Time) (bool, error) {
	if err := d.Validate(); err != nil {
		return false, err
	}
	if o.delivery != nil {
		if o.delivery.JobID == d.JobID {
			return false, nil
		}
		return false, fmt.Errorf("%w: delivery.jobId is %q", ErrExternalRefConflict, o.delivery.JobID)
	}
	o.delivery = d.clone()
	o.touch(now)
	return true, nil
}

// UpdateDeliveryProgress applies a courier status update. Only the delivery status and
// tracking URL change; the order status is never touched here.
//
// Updates are monotonic: a status that ranks below the recorded one (a late "assigned"
// after "picked_up") and any change after a terminal courier status are ignored and
// reported as changed == false. An empty trackingURL keeps the recorded one.
func (o *Order) UpdateDeliveryProgress(jobID string, status DeliveryStatus, trackingURL string, now time.Time) (bool, error) {
	if o.delivery == nil {
		return false, ErrDeliveryNotAttached
	}
	if err := status.Validate(); err != nil {
		return false, err
	}
	if jobID != o.delivery.JobID {
		return false, fmt.Errorf("%w: delivery.jobId is %q, got %q", ErrExternalRefConflict, o.delivery.JobID, jobID)
	}

	changed := false
	current := o.delivery.Status
	if status != current && !current.IsTerminal() && status.rank() >= current.rank() {
		o.delivery.Status = status
		changed = true
	}
	if url := strings.TrimSpace(trackingURL); url != "" && url != o.delivery.TrackingURL {
		o.delivery.TrackingURL = url
		changed = true
	}
	if changed {
		o.touch(now)
	}
	return changed, nil
}

// IncrementVersion is called by repositories after a successful compare-and-swap write.
func (o *Order) IncrementVersion() {
	o.version++
}

// Snapshot returns the full state in the form accepted by RestoreOrder.
func (o *Order) Snapshot() RestoreOrderParams {
	var ref *string
	if o.posSyncRef != nil {
		r := *o.posSyncRef
		ref = &r
	}
	return RestoreOrderParams{
		ID:               o.id,
		TenantID:         o.tenantID,
		Status:           o.status,
		Customer:         o.customer,
		Address:          o.address,
		Items:            cloneItems(o.items),
		SubtotalCents:    o.subtotalCents,
		TaxCents:         o.taxCents,
		DeliveryFeeCents: o.deliveryFeeCents,
		TotalCents:       o.totalCents,
		PaymentRef:       o.paymentRef,
		PaymentStatus:    o.paymentStatus,
		POSSyncRef:       ref,
		Delivery:         o.delivery.clone(),
		Version:          o.version,
		CreatedAt:        o.createdAt,
		UpdatedAt:        o.updatedAt,
	}
}

func (o *Order) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	o.updatedAt = now.UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.TenantID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.tenantID = id
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.customer = Customer{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
	return nil
}

func (o *Order) setAddress(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	o.address = a
	return nil
}

// setItems requires at least one valid item and stores a deep copy.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var problems []error
	for i, it := range items {
		problems = append(problems, it.Validate(i))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.items = cloneItems(items)
	return nil
}

func (o *Order) setCharges(taxCents, deliveryFeeCents int64) error {
	var problems []error
	if taxCents < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("taxCents", fmt.Errorf("%d is negative", taxCents)))
	}
	if deliveryFeeCents < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"deliveryFeeCents", fmt.Errorf("%d is negative", deliveryFeeCents)))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.taxCents = taxCents
	o.deliveryFeeCents = deliveryFeeCents
	return nil
}
