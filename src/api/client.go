// Package api provides a client for the Cirrus CI GraphQL API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"cirrus-run/src/logger"
)

const (
	// DefaultAPIURL is the Cirrus CI GraphQL endpoint.
	DefaultAPIURL = "https://api.cirrus-ci.com/graphql"
	// DefaultLogURL is the base URL for raw task log downloads.
	DefaultLogURL = "https://api.cirrus-ci.com/v1"

	// retryAttempts is the total attempt budget per call: 1 initial + 3 retries.
	retryAttempts = 4
)

// retryHintPattern matches the hint text some API gateway errors carry, e.g.
// "Please try again in 30 seconds." The suggested number is ignored; only the
// presence of the hint matters.
var retryHintPattern = regexp.MustCompile(`(?i)please try again in \d+ seconds`)

// Client executes queries against the Cirrus CI API. The endpoint, token and
// retry delays are fixed after construction; one Client may be reused across
// sequential calls but holds no state between them.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        logger.Logger

	// RetryDelay is slept between ordinary failed attempts. RetryLongDelay is
	// slept instead when the first failed attempt of a call carries the retry
	// hint; later attempts never use it, which bounds the worst-case wait for
	// a single call.
	RetryDelay     time.Duration
	RetryLongDelay time.Duration

	sleep func(time.Duration)
}

// RawResponse is the result of a plain GET, used for log downloads.
type RawResponse struct {
	StatusCode int
	Body       string
}

// NewClient creates a Cirrus CI API client.
func NewClient(baseURL, token string, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log:            log,
		RetryDelay:     10 * time.Second,
		RetryLongDelay: 60 * time.Second,
		sleep:          time.Sleep,
	}
}

// graphqlResponse is the top-level shape of a GraphQL reply.
type graphqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []interface{}          `json:"errors"`
}

// Query executes a GraphQL query or mutation and returns the decoded data
// mapping. Transient failures are retried within the fixed attempt budget;
// when the budget runs out the last response is reported as an *HTTPError.
// A 2xx reply that carries a GraphQL error list instead of data is reported
// as an *HTTPError too: the transport accepted the request but the query was
// rejected.
func (c *Client) Query(ctx context.Context, query string, params map[string]interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	var lastStatus int
	var lastBody string
	for attempt := 0; attempt < retryAttempts; attempt++ {
		status, body, err := c.post(ctx, payload)
		if err != nil {
			return nil, err
		}
		if status >= 200 && status < 300 {
			return c.decode(status, body)
		}

		lastStatus = status
		lastBody = body
		if attempt == retryAttempts-1 {
			break
		}

		delay := c.RetryDelay
		if attempt == 0 && retryHintPattern.MatchString(body) {
			delay = c.RetryLongDelay
			c.log.Info("API server asked for longer retry delay, sleeping for %s", delay)
		}
		c.log.Debug("API request failed with status %d (attempt %d/%d), retrying in %s",
			status, attempt+1, retryAttempts, delay)
		c.sleep(delay)
	}

	return nil, &HTTPError{StatusCode: lastStatus, Body: lastBody}
}

// post performs a single POST attempt. A network-level failure is reported as
// status 0 with the error text as body so it consumes an attempt like any
// other transient failure.
func (c *Client) post(ctx context.Context, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, "", ctx.Err()
		}
		return 0, err.Error(), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err.Error(), nil
	}
	return resp.StatusCode, string(body), nil
}

func (c *Client) decode(status int, body string) (map[string]interface{}, error) {
	var reply graphqlResponse
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(reply.Errors) > 0 || reply.Data == nil {
		return nil, &HTTPError{StatusCode: status, Body: body}
	}
	return reply.Data, nil
}

// Get fetches a URL with the session token and returns the raw response.
// There is no retry here: log downloads are single best-effort attempts and
// the caller decides what a non-2xx status means.
func (c *Client) Get(ctx context.Context, url string) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
