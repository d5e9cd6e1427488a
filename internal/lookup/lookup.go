// Package lookup is the client for the remote "nth prime" query against a
// computational knowledge API.
//
// Failure is deliberately indistinct: network errors, bad status codes,
// decode failures, missing pods, and non-numeric answers all surface as an
// absent result, never as a typed error. Callers show "no value" and move
// on; there is no retry and no way to tell the failure modes apart.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production query endpoint.
const DefaultBaseURL = "https://api.wolframalpha.com/v2/query"

// DefaultTimeout bounds a single lookup when the caller's context doesn't.
const DefaultTimeout = 10 * time.Second

// Client performs nth-prime lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the query endpoint (tests point this at httptest).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithAppID sets the API application ID sent with each query.
func WithAppID(id string) ClientOption {
	return func(c *Client) {
		c.appID = id
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a lookup client with the default endpoint and timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// queryResponse mirrors the slice of the API response we care about:
// the first primary pod's first subpod plaintext.
type queryResponse struct {
	QueryResult struct {
		Success bool `json:"success"`
		Pods    []struct {
			Primary bool `json:"primary"`
			SubPods []struct {
				PlainText string `json:"plaintext"`
			} `json:"subpods"`
		} `json:"pods"`
	} `json:"queryresult"`
}

// NthPrime queries for the nth prime. Returns (value, true) on success and
// (0, false) on ANY failure - the absence is the whole error contract.
//
// One request per call; cancellation comes only from ctx. Callers gate
// concurrent lookups themselves (the app disables the trigger while one is
// in flight).
func (c *Client) NthPrime(ctx context.Context, n int) (int64, bool) {
	q := url.Values{}
	q.Set("input", fmt.Sprintf("prime %d", n))
	q.Set("format", "plaintext")
	q.Set("output", "JSON")
	if c.appID != "" {
		q.Set("appid", c.appID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		slog.Debug("lookup request build failed", "n", n, "error", err)
		return 0, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("lookup request failed", "n", n, "error", err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("lookup bad status", "n", n, "status", resp.StatusCode)
		return 0, false
	}

	var parsed queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Debug("lookup decode failed", "n", n, "error", err)
		return 0, false
	}

	text, ok := firstPrimaryPlaintext(parsed)
	if !ok {
		slog.Debug("lookup missing primary pod", "n", n)
		return 0, false
	}

	value, err := parsePrime(text)
	if err != nil {
		slog.Debug("lookup non-numeric answer", "n", n, "text", text)
		return 0, false
	}

	return value, true
}

// firstPrimaryPlaintext extracts the first primary pod's first subpod text.
func firstPrimaryPlaintext(r queryResponse) (string, bool) {
	for _, pod := range r.QueryResult.Pods {
		if !pod.Primary {
			continue
		}
		if len(pod.SubPods) == 0 {
			return "", false
		}
		return pod.SubPods[0].PlainText, true
	}
	return "", false
}

// parsePrime parses the pod plaintext as an integer. Large answers come
// back with digit-group separators, so commas and spaces are stripped
// before parsing.
func parsePrime(text string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(text))
	return strconv.ParseInt(cleaned, 10, 64)
}
