// Package restclient is the JSON-over-HTTP transport shared by the POS and courier
// adapters. Requests are traced with otelhttp and 4xx answers are mapped onto
// ports.ErrRejected so the retry policy can tell permanent from transient failures.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 4 << 10

// Config configures one upstream service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// StatusError is a non-2xx answer from the upstream service.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Unwrap reports client errors (except 408 and 429) as ports.ErrRejected.
func (e *StatusError) Unwrap() error {
	if e.StatusCode >= 400 && e.StatusCode < 500 &&
		e.StatusCode != http.StatusRequestTimeout && e.StatusCode != http.StatusTooManyRequests {
		return ports.ErrRejected
	}
	return nil
}

// Client sends JSON requests to a single base URL.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

// New validates cfg and builds a client with an instrumented transport.
// operation names the spans created for outbound requests.
func New(cfg Config, operation string) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", fmt.Errorf("unsupported scheme %q", base.Scheme))
	}
	if cfg.Timeout < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("timeout", fmt.Errorf("%s is negative", cfg.Timeout))
	}

	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return operation + " " + r.Method + " " + r.URL.Path
				})),
		},
	}, nil
}

// PostJSON sends in as the request body and decodes a 2xx response into out.
// idempotencyKey, when set, is sent as the Idempotency-Key header.
func (c *Client) PostJSON(ctx context.Context, path, idempotencyKey string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     req.Method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response from %s: empty body", endpoint)
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}
