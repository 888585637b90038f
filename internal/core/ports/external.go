package ports

import (
	"context"
	"errors"
)

// ErrRejected marks a request refused by an external system as invalid (HTTP 4xx).
// Such failures are permanent and never retried.
var ErrRejected = errors.New("request rejected by external system")

// POSOrder is the payload submitted to the point-of-sale system. It is built only
// from the order's immutable snapshot.
type POSOrder struct {
	IdempotencyKey   string      `json:"idempotencyKey"`
	TenantID         string      `json:"tenantId"`
	OrderID          string      `json:"orderId"`
	Customer         POSCustomer `json:"customer"`
	Address          POSAddress  `json:"address"`
	Items            []POSItem   `json:"items"`
	SubtotalCents    int64       `json:"subtotalCents"`
	TaxCents         int64       `json:"taxCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	TotalCents       int64       `json:"totalCents"`
	PaymentRef       string      `json:"paymentRef,omitempty"`
}

type POSCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type POSAddress struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city"`
	CityPart   string `json:"cityPart,omitempty"`
	Note       string `json:"note,omitempty"`
}

type POSItem struct {
	ProductID      string        `json:"productId,omitempty"`
	Name           string        `json:"name"`
	Quantity       int           `json:"quantity"`
	UnitPriceCents int64         `json:"unitPriceCents"`
	Modifiers      []POSModifier `json:"modifiers,omitempty"`
	LineTotalCents int64         `json:"lineTotalCents"`
}

type POSModifier struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

// POSClient submits orders to the point-of-sale system.
type POSClient interface {
	// SubmitOrder returns the POS-side order reference. Errors wrapping ErrRejected
	// are permanent; anything else is treated as transient.
	SubmitOrder(ctx context.Context, order POSOrder) (string, error)
}

// DeliveryRequest is sent to the courier system for quoting and job creation.
type DeliveryRequest struct {
	IdempotencyKey  string     `json:"idempotencyKey"`
	TenantID        string     `json:"tenantId"`
	OrderID         string     `json:"orderId"`
	Dropoff         POSAddress `json:"dropoff"`
	RecipientName   string     `json:"recipientName"`
	RecipientPhone  string     `json:"recipientPhone"`
	OrderTotalCents int64      `json:"orderTotalCents"`
}

// CourierQuote is the courier's offer for a delivery.
type CourierQuote struct {
	QuoteID    string `json:"quoteId"`
	FeeCents   int64  `json:"feeCents"`
	ETAMinutes int    `json:"etaMinutes"`
	Currency   string `json:"currency"`
}

// CourierJob is a created delivery job.
type CourierJob struct {
	JobID       string `json:"jobId"`
	Status      string `json:"status"`
	TrackingURL string `json:"trackingUrl"`
}

// CourierClient talks to the third-party courier network.
type CourierClient interface {
	// Provider names the courier network, stored on the order's delivery record.
	Provider() string
	Quote(ctx context.Context, req DeliveryRequest) (CourierQuote, error)
	CreateJob(ctx context.Context, req DeliveryRequest, quoteID string) (CourierJob, error)
}
