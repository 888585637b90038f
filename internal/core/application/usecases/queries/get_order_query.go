package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full operator view of one order.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Printf("order %s is %s (version %d)\n", view.ID, view.Status, view.Version)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is a flat, read-only copy of an order.
// Version is included so operator clients can detect stale screens.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	TenantID         string
	Status           order.Status
	Customer         order.Customer
	Address          kernel.AddressParams
	Items            []order.Item
	SubtotalCents    int64
	TaxCents         int64
	DeliveryFeeCents int64
	TotalCents       int64
	PaymentStatus    order.PaymentStatus
	PaymentRef       string
	POSSyncRef       string
	Delivery         *order.Delivery
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func newGetOrderQueryResponse(o *order.Order) GetOrderQueryResponse {
	ref, _ := o.POSSyncRef()
	return GetOrderQueryResponse{
		ID:               o.ID(),
		TenantID:         o.TenantID().String(),
		Status:           o.Status(),
		Customer:         o.Customer(),
		Address:          o.Address().Params(),
		Items:            o.Items(),
		SubtotalCents:    o.SubtotalCents(),
		TaxCents:         o.TaxCents(),
		DeliveryFeeCents: o.DeliveryFeeCents(),
		TotalCents:       o.TotalCents(),
		PaymentStatus:    o.PaymentStatus(),
		PaymentRef:       o.PaymentRef(),
		POSSyncRef:       ref,
		Delivery:         o.Delivery(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}
