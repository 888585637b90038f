// Package pos is the HTTP adapter for the point-of-sale system.
package pos

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/adapters/out/restclient"
	"fulfillment/internal/core/ports"
)

var _ ports.POSClient = (*Client)(nil)

type submitOrderResponse struct {
	POSOrderID string `json:"posOrderId"`
}

// Client submits orders to POST {baseURL}/orders.
type Client struct {
	rest *restclient.Client
}

func NewClient(cfg restclient.Config) (*Client, error) {
	rest, err := restclient.New(cfg, "pos")
	if err != nil {
		return nil, fmt.Errorf("pos client: %w", err)
	}
	return &Client{rest: rest}, nil
}

// SubmitOrder posts the order with its idempotency key and returns the POS order id.
// The POS answers a replayed key with the reference it issued the first time.
func (c *Client) SubmitOrder(ctx context.Context, order ports.POSOrder) (string, error) {
	var resp submitOrderResponse
	if err := c.rest.PostJSON(ctx, "orders", order.IdempotencyKey, order, &resp); err != nil {
		return "", fmt.Errorf("submit order %s to pos: %w", order.OrderID, err)
	}

	ref := strings.TrimSpace(resp.POSOrderID)
	if ref == "" {
		return "", fmt.Errorf("submit order %s to pos: response carries no posOrderId", order.OrderID)
	}
	return ref, nil
}
