package amadeus

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

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrCityNotFound is returned when no location matches the requested keyword.
var ErrCityNotFound = errors.New("city not found")

// staticCityCodes shortcuts the location lookup for cities the API resolves
// to the wrong IATA code or not at all. Matched exactly; any other spelling
// goes through the keyword lookup.
var staticCityCodes = map[string]string{
	"Bucharest":  "BUH",
	"Copenhagen": "CPH",
	"Budapest":   "BUD",
}

// Config carries the credentials and endpoint of the hotel inventory API.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client calls the hotel inventory API with OAuth2 client credentials.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a client whose transport refreshes access tokens as needed.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     base + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = timeout

	return &Client{client: httpClient, baseURL: base}
}

// NewClientWithHTTP builds a client over a caller-supplied transport.
func NewClientWithHTTP(client *http.Client, baseURL string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// ResolveCity maps a city name to its IATA city code. Well-known names
// resolve without a network call.
func (c *Client) ResolveCity(ctx context.Context, city string) (string, error) {
	if code, ok := staticCityCodes[city]; ok {
		return code, nil
	}

	query := url.Values{}
	query.Set("keyword", city)
	query.Set("subType", "CITY")

	var resp struct {
		Data []struct {
			IataCode string `json:"iataCode"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/reference-data/locations", query, &resp); err != nil {
		return "", fmt.Errorf("resolve city %q: %w", city, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].IataCode == "" {
		return "", fmt.Errorf("resolve city %q: %w", city, ErrCityNotFound)
	}

	return resp.Data[0].IataCode, nil
}

// ListHotelIDs returns the identifiers of hotels located in the given city.
func (c *Client) ListHotelIDs(ctx context.Context, cityCode string) ([]string, error) {
	query := url.Values{}
	query.Set("cityCode", cityCode)

	var resp struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/reference-data/locations/hotels/by-city", query, &resp); err != nil {
		return nil, fmt.Errorf("list hotels for %s: %w", cityCode, err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.HotelID != "" {
			ids = append(ids, item.HotelID)
		}
	}
	return ids, nil
}

// GeoCode holds the hotel coordinates.
type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Contact holds the hotel contact details.
type Contact struct {
	Phone string `json:"phone"`
}

// Hotel is the property block of an offer response.
type Hotel struct {
	HotelID string   `json:"hotelId"`
	Name    string   `json:"name"`
	Rating  string   `json:"rating"`
	Website string   `json:"website"`
	Contact *Contact `json:"contact"`
	GeoCode *GeoCode `json:"geoCode"`
}

// Price is the total price of one offer.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Offer is a single bookable rate for a hotel.
type Offer struct {
	Price Price `json:"price"`
}

// HotelOffers couples a hotel with its available offers.
type HotelOffers struct {
	Hotel  Hotel   `json:"hotel"`
	Offers []Offer `json:"offers"`
}

// SearchOffers fetches available offers for one hotel and stay.
func (c *Client) SearchOffers(ctx context.Context, hotelID, checkIn, checkOut string, adults int) (*HotelOffers, error) {
	query := url.Values{}
	query.Set("hotelIds", hotelID)
	query.Set("checkInDate", checkIn)
	query.Set("checkOutDate", checkOut)
	query.Set("adults", fmt.Sprintf("%d", adults))

	var resp struct {
		Data []HotelOffers `json:"data"`
	}
	if err := c.getJSON(ctx, "/v3/shopping/hotel-offers", query, &resp); err != nil {
		return nil, fmt.Errorf("offers for %s: %w", hotelID, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("offers for %s: empty response", hotelID)
	}

	return &resp.Data[0], nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
