// Package amadeus is the client for the travel-data provider: token
// lifecycle, flight-offers search and hotel lookup.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/you/go-travel-gateway/internal/metrics"
)

const (
	defaultBaseURL = "https://test.api.amadeus.com"
	tokenPath      = "/v1/security/oauth2/token"

	// Tokens are treated as expired one minute early so a token is never
	// used while it could lapse mid-request.
	refreshMargin = 60 * time.Second
)

// Client talks to the provider and owns the shared access-token cache.
// Safe for concurrent use.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default provider base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// NewClient creates a provider client using the client-credentials grant.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 15 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns a valid bearer token. The cached token is returned without
// a network call while strictly before its expiry; otherwise a new one is
// requested and cached.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.nowFunc().Before(c.expiry) {
		return c.token, nil
	}

	return c.refreshLocked(ctx)
}

func (c *Client) refreshLocked(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+tokenPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("creating token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("executing token request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("reading token response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Err: fmt.Errorf(
			"token request failed (status %d): %s", resp.StatusCode, body,
		)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &AuthError{Err: fmt.Errorf("parsing token response: %w", err)}
	}

	metrics.TokenRefreshesTotal.Inc()

	c.token = tr.AccessToken
	c.expiry = c.nowFunc().
		Add(time.Duration(tr.ExpiresIn) * time.Second).
		Add(-refreshMargin)

	return c.token, nil
}

// get issues a bearer-authenticated GET and returns the response body.
// Non-200 responses are mapped once, here, to SearchError when the provider
// sent structured error details and to UnavailableError otherwise.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	tok, err := c.Token(ctx)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint, "auth").Inc()
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+path+"?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	metrics.ProviderCallsTotal.WithLabelValues(endpoint).Inc()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint, "network").Inc()
		return nil, &UnavailableError{Err: fmt.Errorf("executing request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint, "network").Inc()
		return nil, &UnavailableError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(endpoint, resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) statusError(endpoint string, status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && len(er.Errors) > 0 {
		details := make([]string, 0, len(er.Errors))
		for _, e := range er.Errors {
			if e.Detail != "" {
				details = append(details, e.Detail)
			} else {
				details = append(details, e.Title)
			}
		}
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint, "upstream").Inc()
		return &SearchError{Details: details}
	}
	metrics.ProviderErrorsTotal.WithLabelValues(endpoint, "opaque").Inc()
	return &UnavailableError{Err: fmt.Errorf("request failed (status %d)", status)}
}
