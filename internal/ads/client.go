package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"

	"campaignexport/internal/infrastructure"
)

const (
	TracerName = "campaignexport/ads"

	developerTokenHeader  = "developer-token"
	loginCustomerIDHeader = "login-customer-id"
)

// Options configures a Client
type Options struct {
	Endpoint        string
	APIVersion      string
	DeveloperToken  string
	LoginCustomerID string
	UserAgent       string
}

// Client issues GoogleAdsService requests over an authenticated HTTP client
type Client struct {
	httpClient *http.Client
	opts       Options
	logger     *slog.Logger
}

// New creates a Client on top of an already-authenticated HTTP client
func New(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	opts.Endpoint = strings.TrimRight(opts.Endpoint, "/")
	return &Client{
		httpClient: httpClient,
		opts:       opts,
		logger:     infrastructure.WithComponent(infrastructure.GetLogger(), "ads"),
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

// SearchStream runs query for customerID and yields response batches in arrival order.
// The HTTP request is sent when iteration starts. A rejected request yields a *Failure.
func (c *Client) SearchStream(ctx context.Context, customerID, query string) iter.Seq2[*Batch, error] {
	return func(yield func(*Batch, error) bool) {
		ctx, span := otel.Tracer(TracerName).Start(ctx, "ads.search_stream",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("ads.customer_id", customerID),
				attribute.String("ads.api_version", c.opts.APIVersion),
			))
		defer span.End()

		resp, err := c.post(ctx, customerID, query)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		batches := 0
		for batch, err := range decodeStream(resp.Body, resp.Header) {
			if err != nil {
				infrastructure.RecordError(ctx, err)
				yield(nil, err)
				return
			}
			batches++
			c.logger.DebugContext(ctx, "Received search stream batch",
				slog.Int("batch", batches),
				slog.Int("rows", len(batch.Results)),
				slog.String("request_id", batch.RequestID))
			if !yield(batch, nil) {
				return
			}
		}
		span.SetAttributes(attribute.Int("ads.batches", batches))
	}
}

// post sends the searchStream request and returns the open response on success
func (c *Client) post(ctx context.Context, customerID, query string) (*http.Response, error) {
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	endpoint := c.searchStreamURL(customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(developerTokenHeader, c.opts.DeveloperToken)
	if c.opts.LoginCustomerID != "" {
		req.Header.Set(loginCustomerIDHeader, c.opts.LoginCustomerID)
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	c.logger.InfoContext(ctx, "Sending search stream request",
		slog.String("customer_id", customerID),
		slog.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search stream request failed: %w", err)
	}

	if err := googleapi.CheckResponse(resp); err != nil {
		resp.Body.Close()
		return nil, failureFromResponse(resp, err)
	}

	return resp, nil
}

func (c *Client) searchStreamURL(customerID string) string {
	return fmt.Sprintf("%s/%s/customers/%s/googleAds:searchStream",
		c.opts.Endpoint, c.opts.APIVersion, url.PathEscape(customerID))
}
