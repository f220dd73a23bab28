// Package swapi reads the starship collection from the Star Wars API.
package swapi

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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/metrics"
)

// Client talks to the remote catalog. Calls are sequential and never retried.
type Client struct {
	BaseURL   string
	Client    *http.Client
	UserAgent string
}

// NewClient creates a client for baseURL, e.g. https://www.swapi.tech/api
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		UserAgent: DefaultUserAgent,
	}
}

// ListAllIDs walks every page of the starship collection and returns all uids.
// Page 1 reports total_pages; pages 2..total_pages are then fetched in order.
func (c *Client) ListAllIDs(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, min(max(first.TotalRecords, 0), MaxPreallocIDs))
	ids = appendUIDs(ids, first.Results)

	for page := 2; page <= first.TotalPages; page++ {
		log.Debug(LogMsgFetchingPage, "page", page, "total_pages", first.TotalPages)
		resp, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		ids = appendUIDs(ids, resp.Results)
	}

	log.Info(LogMsgPagesComplete, "pages", max(first.TotalPages, 1), "count", len(ids))
	return ids, nil
}

// FetchDetail returns the properties of one starship.
func (c *Client) FetchDetail(ctx context.Context, id string) (*Properties, error) {
	logger.FromContext(ctx).Debug(LogMsgFetchDetail, "uid", id)

	endpoint := c.BaseURL + PathStarships + "/" + url.PathEscape(id)
	var resp DetailResponse
	if err := c.getJSON(ctx, EndpointDetail, schemaDetail, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp.Result.Properties, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*ListResponse, error) {
	endpoint := c.BaseURL + PathStarships + "?page=" + strconv.Itoa(page)
	var resp ListResponse
	if err := c.getJSON(ctx, EndpointList, schemaList, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getJSON performs a GET, checks a 2xx body against the named schema and
// decodes it into out. Every failure is a *RemoteError.
func (c *Client) getJSON(ctx context.Context, label, schema, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.SwapiRequestsTotal.WithLabelValues(label, metrics.StatusTransportError).Inc()
		return &RemoteError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	metrics.SwapiRequestsTotal.WithLabelValues(label, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return &RemoteError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	if err := validateBody(schema, body); err != nil {
		return &RemoteError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RemoteError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode body: %w", err)}
	}
	return nil
}

func appendUIDs(ids []string, results []ListSummary) []string {
	for _, r := range results {
		ids = append(ids, r.UID)
	}
	return ids
}
