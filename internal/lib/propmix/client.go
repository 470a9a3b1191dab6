// Package propmix is a client for the PropMix distressed-property API.
//
// Only the bounding-box listing search is implemented. The response JSON
// is returned untouched so the gateway can pass it straight through.
package propmix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/homeauctiondeals/gateway/internal/config"
	"github.com/homeauctiondeals/gateway/internal/model"
)

// AccessTokenHeader carries the API token on every request.
const AccessTokenHeader = "AccessToken"

// maxResponseBytes caps how much of a listing response is read.
const maxResponseBytes = 10 << 20

// fixedFilters are always sent and cannot be overridden by callers.
var fixedFilters = []struct{ key, value string }{
	{"DistressStatus", "Auction"},
	{"AbbreviatedFieldNames", "0"},
	{"StandardStatus", "Active"},
}

// reservedParams are set by the client itself and never taken from
// caller filters, even if an allow-list names them.
var reservedParams = map[string]struct{}{
	"nelatitude":            {},
	"nelongitude":           {},
	"swlatitude":            {},
	"swlongitude":           {},
	"pagenumber":            {},
	"pagesize":              {},
	"distressstatus":        {},
	"abbreviatedfieldnames": {},
	"standardstatus":        {},
	"city":                  {},
	"state":                 {},
	"zip":                   {},
}

// ErrInvalidResponse is returned when the API answers 2xx with a body that
// is not JSON.
var ErrInvalidResponse = errors.New("propmix: response is not valid JSON")

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("propmix: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client calls the PropMix API. It is safe for concurrent use.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client

	// allowed maps lower-cased filter names to the spelling sent upstream.
	allowed map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the configured endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

// NewClient builds a client from cfg.
func NewClient(cfg config.PropMixConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		allowed:     make(map[string]string, len(cfg.AllowedFilters)),
	}

	for _, name := range cfg.AllowedFilters {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, reserved := reservedParams[strings.ToLower(name)]; reserved {
			continue
		}
		c.allowed[strings.ToLower(name)] = name
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchParams describes one bounding-box listing request.
type SearchParams struct {
	Box  model.BoundingBox
	Page model.Page

	// Filters are candidate listing filters, usually the raw request
	// query. Names not on the allow-list are dropped.
	Filters url.Values
}

// AllowedFilters returns the subset of filters that would be forwarded,
// keyed by their upstream spelling.
func (c *Client) AllowedFilters(filters url.Values) url.Values {
	out := url.Values{}
	for key, values := range filters {
		name, ok := c.allowed[strings.ToLower(key)]
		if !ok {
			continue
		}
		for _, v := range values {
			out.Add(name, v)
		}
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// buildURL assembles the request URL: allowed filters first, then the box,
// pagination and fixed filters, which overwrite anything with the same name.
func (c *Client) buildURL(p SearchParams) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("propmix: parse base url: %w", err)
	}

	q := u.Query()
	for key, values := range c.AllowedFilters(p.Filters) {
		q[key] = values
	}

	q.Set("NELatitude", formatCoord(p.Box.NELatitude))
	q.Set("NELongitude", formatCoord(p.Box.NELongitude))
	q.Set("SWLatitude", formatCoord(p.Box.SWLatitude))
	q.Set("SWLongitude", formatCoord(p.Box.SWLongitude))
	q.Set("PageNumber", strconv.Itoa(p.Page.Number))
	q.Set("PageSize", strconv.Itoa(p.Page.Size))
	for _, f := range fixedFilters {
		q.Set(f.key, f.value)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// GetPropertiesInBoundingBox fetches one page of active auction listings
// inside the box. The response body is returned as-is.
func (c *Client) GetPropertiesInBoundingBox(ctx context.Context, p SearchParams) (json.RawMessage, error) {
	endpoint, err := c.buildURL(p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("propmix: build request: %w", err)
	}
	req.Header.Set(AccessTokenHeader, c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("propmix: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("propmix: read response: %w", err)
	}
	if !json.Valid(body) {
		return nil, ErrInvalidResponse
	}

	return json.RawMessage(body), nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
