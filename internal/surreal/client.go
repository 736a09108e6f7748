package surreal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vvka-141/slurp/pkg/slurp"
)

// maxResponseBody caps how much of any response is buffered in memory.
const maxResponseBody = 1 << 20

// ClientConfig configures the HTTP submitter.
type ClientConfig struct {
	// Endpoint is the full /sql URL
	Endpoint string

	// Namespace and Database are sent as Surreal-NS and Surreal-DB headers
	Namespace string
	Database  string

	// Timeout bounds the whole request including reading the body.
	// Zero means slurp.DefaultRequestTimeout.
	Timeout time.Duration

	// HTTPClient overrides the default client; its Timeout is left untouched
	HTTPClient *http.Client
}

// Client submits SurrealQL statements over HTTP.
// A single Client is shared by all workers; http.Client is safe for concurrent use.
type Client struct {
	endpoint  string
	namespace string
	database  string
	http      *http.Client
}

// NewClient creates a Client from config.
func NewClient(config ClientConfig) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = slurp.DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:  config.Endpoint,
		namespace: config.Namespace,
		database:  config.Database,
		http:      httpClient,
	}
}

// Endpoint returns the URL statements are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit implements slurp.Submitter. Any response, whatever its status, is
// returned without error; the error return is reserved for transport
// failures and is always a *TransportError.
func (c *Client) Submit(ctx context.Context, statement string) (slurp.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(statement))
	if err != nil {
		return slurp.Response{}, ClassifyTransportError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set(slurp.HeaderNamespace, c.namespace)
	req.Header.Set(slurp.HeaderDatabase, c.database)

	resp, err := c.http.Do(req)
	if err != nil {
		return slurp.Response{}, ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	// The status is already known; a body read failure only loses diagnostics.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	_, _ = io.Copy(io.Discard, resp.Body)

	return slurp.Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}
