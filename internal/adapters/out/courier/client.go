// Package courier is the HTTP adapter for the third-party courier network.
package courier

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/adapters/out/restclient"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.CourierClient = (*Client)(nil)

// Config extends the transport settings with the provider name stored on orders.
type Config struct {
	restclient.Config
	Provider string
}

type createJobRequest struct {
	ports.DeliveryRequest
	QuoteID string `json:"quoteId"`
}

// Client quotes and books delivery jobs.
type Client struct {
	rest     *restclient.Client
	provider string
}

func NewClient(cfg Config) (*Client, error) {
	provider := strings.TrimSpace(cfg.Provider)
	if provider == "" {
		return nil, fmt.Errorf("courier client: %w", errs.NewValueIsRequiredError("provider"))
	}
	rest, err := restclient.New(cfg.Config, "courier")
	if err != nil {
		return nil, fmt.Errorf("courier client: %w", err)
	}
	return &Client{rest: rest, provider: provider}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

// Quote asks POST {baseURL}/quotes for a price and ETA.
func (c *Client) Quote(ctx context.Context, req ports.DeliveryRequest) (ports.CourierQuote, error) {
	var quote ports.CourierQuote
	if err := c.rest.PostJSON(ctx, "quotes", req.IdempotencyKey+":quote", req, &quote); err != nil {
		return ports.CourierQuote{}, fmt.Errorf("quote delivery for order %s: %w", req.OrderID, err)
	}
	if strings.TrimSpace(quote.QuoteID) == "" {
		return ports.CourierQuote{}, fmt.Errorf("quote delivery for order %s: response carries no quoteId", req.OrderID)
	}
	return quote, nil
}

// CreateJob books the quoted delivery with POST {baseURL}/jobs. The idempotency key
// makes a retried booking return the job created the first time.
func (c *Client) CreateJob(ctx context.Context, req ports.DeliveryRequest, quoteID string) (ports.CourierJob, error) {
	var job ports.CourierJob
	body := createJobRequest{DeliveryRequest: req, QuoteID: quoteID}
	if err := c.rest.PostJSON(ctx, "jobs", req.IdempotencyKey, body, &job); err != nil {
		return ports.CourierJob{}, fmt.Errorf("create delivery job for order %s: %w", req.OrderID, err)
	}
	if strings.TrimSpace(job.JobID) == "" {
		return ports.CourierJob{}, fmt.Errorf("create delivery job for order %s: response carries no jobId", req.OrderID)
	}
	return job, nil
}
