package n8n

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/PolarWolf314/n8nsync/internal/configs"
	kerrors "github.com/PolarWolf314/n8nsync/internal/errors"
	logger "github.com/PolarWolf314/n8nsync/internal/logging"
	"github.com/PolarWolf314/n8nsync/internal/record"
)

// Public API constants.
const (
	APIPrefix    = "/api/v1"
	HeaderAPIKey = "X-N8N-API-KEY"
	PageLimit    = 100
)

// Client talks to the n8n public REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient returns a Client for the instance described by cfg.
func NewClient(cfg *configs.Config, log logger.Logger) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = cfg.Timeout
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: hc,
		log:        log,
	}
}

// BaseURL returns the instance address without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// get performs an authenticated GET of APIPrefix+path and parses the body.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*record.Value, error) {
	target := c.baseURL + APIPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.log.Debugf("GET %s", target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response of GET %s: %w", path, err)
	}
	c.log.Debugf("GET %s: %s (%d bytes)", path, resp.Status, len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, kerrors.NewHTTPStatusError(http.MethodGet, APIPrefix+path, resp.StatusCode, resp.Status, body)
	}

	v, err := record.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", kerrors.ErrInvalidResponse, path, err)
	}
	return v, nil
}
