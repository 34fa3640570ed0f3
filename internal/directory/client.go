package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/roster/internal/state"
)

// UserFetcher loads one page of users from the directory service. *Client
// implements it; the UI depends only on this interface.
type UserFetcher interface {
	FetchUsers(ctx context.Context) ([]state.User, error)
}

var _ UserFetcher = (*Client)(nil)

const (
	DefaultEndpoint  = "https://randomuser.me/api/"
	DefaultResults   = 100
	defaultUserAgent = "roster/0.1"
)

// Options configure a Client. Zero fields take defaults.
type Options struct {
	Endpoint   string
	Results    int
	HTTPClient *http.Client
	Logger     hclog.Logger
}

// Client talks to the user directory HTTP API.
type Client struct {
	endpoint  *url.URL
	results   int
	http      *http.Client
	userAgent string
	logger    hclog.Logger
}

// NewClient builds a Client. The default http.Client has no timeout: a
// fetch only ends when the server answers or ctx is cancelled.
func NewClient(opts Options) (*Client, error) {
	endpoint, err := parseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}
	results := opts.Results
	if results <= 0 {
		results = DefaultResults
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		endpoint:  endpoint,
		results:   results,
		http:      httpClient,
		userAgent: defaultUserAgent,
		logger:    logger,
	}, nil
}

// Endpoint returns the resolved service URL without the query string.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// FetchUsers performs exactly one GET and maps the results. Failures are
// returned as *Error; nothing is retried.
func (c *Client) FetchUsers(ctx context.Context) ([]state.User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqID := uuid.NewString()
	log := c.logger.With("request_id", reqID)
	start := time.Now()

	values := url.Values{}
	values.Set("results", strconv.Itoa(c.results))
	reqURL := *c.endpoint
	reqURL.RawQuery = values.Encode()

	log.Debug("fetching users", "url", reqURL.String())

	var payload UsersResponse
	if err := c.get(ctx, &reqURL, &payload); err != nil {
		log.Error("fetch users failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		err := networkError("fetch users", 0, fmt.Errorf("service error: %s", msg))
		log.Error("fetch users failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	users, dropped := toUsers(payload.Results)
	if dropped > 0 {
		log.Warn("dropped records without a unique id", "dropped", dropped)
	}
	log.Info("fetched users", "count", len(users), "seed", payload.Info.Seed, "elapsed", time.Since(start))
	return users, nil
}

func (c *Client) get(ctx context.Context, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return networkError("create request", 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError("execute request", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return networkError("fetch users", resp.StatusCode,
			fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return parseError("decode response", err)
	}
	return nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse endpoint %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("parse endpoint: missing host")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
