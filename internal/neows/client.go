package neows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for fetching NEO data from the NeoWs API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchFeed(ctx context.Context, r DateRange) ([]string, error)
	FetchNeo(ctx context.Context, id string) ([]string, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ErrNotFound indicates the requested NEO id does not exist.
var ErrNotFound = errors.New("neo not found")

// DateRange bounds a feed query. An empty field is left out of the
// request so the server applies its own default (today for Start,
// Start plus seven days for End).
type DateRange struct {
	Start string
	End   string
}

// Client talks to the NASA NeoWs HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	userAgent string
}

const (
	// DefaultBaseURL is the public NeoWs endpoint.
	DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

	// DemoKey is NASA's public rate-limited key, used when no key is
	// configured.
	DemoKey = "DEMO_KEY"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "neotrack/0.1"
)

// NewClient builds a Client for the given base URL and API key. Empty
// arguments fall back to the public endpoint, the demo key, and a
// bounded default timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		apiKey = DemoKey
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
	}, nil
}

// FetchFeed retrieves the NEO feed for the given range and returns the
// top-level field names of the response, in document order.
func (c *Client) FetchFeed(ctx context.Context, r DateRange) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("api_key", c.apiKey)
	if r.Start != "" {
		values.Set("start_date", r.Start)
	}
	if r.End != "" {
		values.Set("end_date", r.End)
	}
	rel := &url.URL{Path: "feed", RawQuery: values.Encode()}
	return c.get(ctx, rel)
}

// FetchNeo retrieves a single NEO by id and returns the top-level field
// names of the response. A 404 from the API maps to ErrNotFound.
func (c *Client) FetchNeo(ctx context.Context, id string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("api_key", c.apiKey)
	rel := &url.URL{Path: "neo/" + url.PathEscape(id), RawQuery: values.Encode()}
	return c.get(ctx, rel)
}

func (c *Client) get(ctx context.Context, rel *url.URL) ([]string, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	fields, err := topLevelFields(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return fields, nil
}

// topLevelFields reads a JSON object and returns its top-level keys in
// document order, discarding every value.
func topLevelFields(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	var fields []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return nil, err
		}
		fields = append(fields, key)
	}
	return fields, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	// ResolveReference needs a trailing slash to keep the version prefix.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
