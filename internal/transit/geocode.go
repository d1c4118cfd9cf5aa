package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GeocodeLocator is a fallback that calls the Maps web services directly,
// using the human readable duration text instead of typed values.
type GeocodeLocator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	radius  int
}

// NewGeocodeLocator builds the web service fallback locator. The base URL is
// overridable for tests and defaults to the public endpoint.
func NewGeocodeLocator(client *http.Client, baseURL, apiKey string, radiusMeters int) *GeocodeLocator {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	if radiusMeters <= 0 {
		radiusMeters = 1000
	}
	return &GeocodeLocator{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		radius:  radiusMeters,
	}
}

// Nearest looks up the closest transit station and the walking time to it.
func (l *GeocodeLocator) Nearest(ctx context.Context, lat, lng float64) (*Hit, error) {
	origin := fmt.Sprintf("%f,%f", lat, lng)

	query := url.Values{}
	query.Set("location", origin)
	query.Set("radius", fmt.Sprintf("%d", l.radius))
	query.Set("type", "transit_station")
	query.Set("key", l.apiKey)

	var search struct {
		Results []struct {
			Name     string `json:"name"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := l.getJSON(ctx, "/maps/api/place/nearbysearch/json", query, &search); err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}
	if len(search.Results) == 0 {
		return nil, nil
	}

	station := search.Results[0]
	dest := fmt.Sprintf("%f,%f", station.Geometry.Location.Lat, station.Geometry.Location.Lng)

	query = url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", dest)
	query.Set("mode", "walking")
	query.Set("key", l.apiKey)

	var matrix struct {
		Rows []struct {
			Elements []struct {
				Status   string `json:"status"`
				Duration struct {
					Text string `json:"text"`
				} `json:"duration"`
				Distance struct {
					Text string `json:"text"`
				} `json:"distance"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := l.getJSON(ctx, "/maps/api/distancematrix/json", query, &matrix); err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}

	hit := &Hit{Name: station.Name}
	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return hit, nil
	}

	element := matrix.Rows[0].Elements[0]
	if element.Status != "OK" {
		return hit, nil
	}

	hit.DurationText = element.Duration.Text
	hit.DistanceText = element.Distance.Text
	if minutes, ok := leadingMinutes(element.Duration.Text); ok {
		hit.Minutes = &minutes
	}
	return hit, nil
}

func (l *GeocodeLocator) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := l.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ Locator = (*GeocodeLocator)(nil)
