package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound contract-test call. A slow endpoint
// is surfaced as a transport failure, not retried: contract testing wants
// flakiness visible, not masked.
const DefaultTimeout = 5 * time.Second

// Response is what a contract check needs from an HTTP exchange: status,
// raw body and headers.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Client performs one HTTP request on behalf of the runner. Implementations
// return a *TransportError for connection, timeout and transport-level
// problems.
type Client interface {
	Do(ctx context.Context, method, url string, body any) (*Response, error)
}

// TransportError reports a failure to complete an HTTP exchange at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPClient is the production Client backed by net/http. Redirects are not
// followed: the contract is about the endpoint's own response.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a client with the given timeout; zero means
// DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Do issues the request and drains the response. body, when non-nil, is
// sent as JSON.
func (c *HTTPClient) Do(ctx context.Context, method, url string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: "encode request body", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("%s %s", method, url), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response body", Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Headers:    resp.Header,
	}, nil
}
