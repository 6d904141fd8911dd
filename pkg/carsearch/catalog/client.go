package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// Client fetches raw records from the upstream catalog API. Any failure
// (transport, non-2xx status, malformed body) is returned as an error and
// the caller falls back to the synthetic generator. There is no retry.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient returns a client for the catalog API at baseURL. A nil httpc
// gets a default client with a 10 second timeout.
func NewClient(baseURL, apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, httpc: httpc}
}

// SearchURL builds the fully-qualified upstream URL for the given query
// parameters. It doubles as the cache key for the response.
func (c *Client) SearchURL(params url.Values) string {
	u := c.baseURL + "/cars"
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// Fetch retrieves raw catalog records from rawURL.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]dal.CatalogRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var records []dal.CatalogRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}
	return records, nil
}

// FetchByID retrieves a single raw record by its id.
func (c *Client) FetchByID(ctx context.Context, id int) (dal.CatalogRecord, error) {
	rawURL := fmt.Sprintf("%s/cars/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return dal.CatalogRecord{}, fmt.Errorf("building catalog request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return dal.CatalogRecord{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dal.CatalogRecord{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var record dal.CatalogRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return dal.CatalogRecord{}, fmt.Errorf("decoding catalog response: %w", err)
	}
	return record, nil
}
