package upstream

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

	"ticketfront/pkg/logger"

	"github.com/sony/gobreaker"
)

// maxErrorBody caps how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// Client calls the reservation API with JSON bodies. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.GetDefault(),
	}
}

// Get decodes the JSON response of GET path?query into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out when out is not nil
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// WithCircuitBreaker stops calling the reservation API for cooldown after
// failures consecutive transport errors or 5xx responses. Calls refused
// meanwhile fail with ErrUnavailable. failures == 0 leaves c unchanged.
func (c *Client) WithCircuitBreaker(failures uint32, cooldown time.Duration) *Client {
	if failures == 0 {
		return c
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "reservation-api",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Rejections and caller cancellations say nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("Circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Do performs one request. The bearer token in ctx, if any, is forwarded.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.breaker == nil {
		return c.do(ctx, method, path, query, body, out)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, method, path, query, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{Method: method, Path: path, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.logger.LogUpstreamCall(ctx, method, path, status, time.Since(start), err)
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, marshalErr)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    "invalid response body",
			Err:        err,
		}
	}
	return nil
}

// extractMessage reads {"message": "..."} from an error body
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}
