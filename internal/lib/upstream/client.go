// Package upstream relays the external demo API behind /fetchtest.
package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds how much of the upstream response is read.
const maxBodyBytes = 10 << 20

type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a client for url. A zero timeout means no client-side limit.
//
// Outgoing calls are recorded as New Relic external segments when the
// request context carries a transaction.
func NewClient(url string, timeout time.Duration) (*Client, error) {
	if url == "" {
		return nil, errors.New("upstream url is empty")
	}

	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newrelic.NewRoundTripper(nil),
		},
	}, nil
}

// Fetch GETs the upstream URL and returns its JSON body unchanged.
func (c *Client) Fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "call upstream %s", c.url)
	}
	defer resp.Body.Close()

	zerolog.Ctx(ctx).Debug().
		Str("upstream_url", c.url).
		Int("upstream_status", resp.StatusCode).
		Dur("upstream_duration", time.Since(start)).
		Msg("upstream responded")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read upstream body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("upstream %s returned status %d", c.url, resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, errors.Errorf("upstream %s returned invalid JSON", c.url)
	}

	return json.RawMessage(body), nil
}
