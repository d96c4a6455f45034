package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// Client fetches the version endpoint deployed services expose. All
// requests are read-only GETs.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a status client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchVersion retrieves {baseURL}/{service}/{environment}/version.json
func (c *Client) FetchVersion(ctx context.Context, service, environment string) (*model.VersionInfo, error) {
	url := fmt.Sprintf("%s/%s/%s/version.json", c.baseURL, service, environment)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build status request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch service status", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code",
			goerr.V("url", url), goerr.V("code", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read status response", goerr.V("url", url))
	}

	var info model.VersionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, goerr.Wrap(err, "failed to decode status response", goerr.V("url", url))
	}
	return &info, nil
}
