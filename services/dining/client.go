// File: services/dining/client.go
package dining

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cmueats/models"
)

// LocationSource fetches raw locations from the upstream dining API.
type LocationSource interface {
	FetchLocations(ctx context.Context) ([]models.Location, error)
}

// Client talks to the ScottyLabs dining API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchLocations retrieves GET <base>/locations.
func (c *Client) FetchLocations(ctx context.Context) ([]models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/locations", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dining api: status %d, response: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload models.LocationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding locations: %w", err)
	}
	return payload.Locations, nil
}
