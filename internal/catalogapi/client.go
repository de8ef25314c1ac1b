package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source defines the catalog service operations shelfscan depends on.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	FetchProducts(ctx context.Context) ([]Product, error)
	TriggerScrape(ctx context.Context, runID string) (ScrapeStatus, error)
	FetchScrapeStatus(ctx context.Context) (ScrapeStatus, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL         = "127.0.0.1:8000"
	defaultUserAgent      = "shelfscan/0.1"
	defaultRequestTimeout = 10 * time.Second
	requestIDHeader       = "X-Request-ID"
)

// NewClient builds a Client for the given host:port or URL. A non-positive timeout
// uses the default.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchProducts retrieves the full catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Product
	if err := c.do(ctx, request{op: "fetch products", method: http.MethodGet, path: "/api/products"}, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []Product{}
	}
	return payload, nil
}

// TriggerScrape asks the service to start a background scrape. Any 2xx response is an
// acknowledgement; the body is decoded when it is JSON and ignored otherwise.
func (c *Client) TriggerScrape(ctx context.Context, runID string) (ScrapeStatus, error) {
	if c == nil {
		return ScrapeStatus{}, fmt.Errorf("client is nil")
	}
	var ack ScrapeStatus
	req := request{op: "trigger scrape", method: http.MethodPost, path: "/api/scrape", requestID: runID, lenient: true}
	if err := c.do(ctx, req, &ack); err != nil {
		return ScrapeStatus{}, err
	}
	return ack, nil
}

// FetchScrapeStatus retrieves the state of the most recent scrape job.
func (c *Client) FetchScrapeStatus(ctx context.Context) (ScrapeStatus, error) {
	if c == nil {
		return ScrapeStatus{}, fmt.Errorf("client is nil")
	}
	var status ScrapeStatus
	if err := c.do(ctx, request{op: "fetch scrape status", method: http.MethodGet, path: "/api/scrape/status"}, &status); err != nil {
		return ScrapeStatus{}, err
	}
	return status, nil
}

type request struct {
	op        string
	method    string
	path      string
	requestID string
	lenient   bool // tolerate bodies that are not JSON
}

func (c *Client) do(ctx context.Context, r request, dest any) error {
	rel := &url.URL{Path: r.path}
	if err := c.doURL(ctx, r, rel, dest); err != nil {
		return &NetworkError{Op: r.op, Path: r.path, Status: statusOf(err), Err: err}
	}
	return nil
}

// statusError carries the HTTP status out of doURL.
type statusError struct {
	path   string
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.path, e.status)
}

func statusOf(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.status
	}
	return 0
}

func (c *Client) doURL(ctx context.Context, r request, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, r.method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id := strings.TrimSpace(r.requestID); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{path: rel.String(), status: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil && !r.lenient {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
