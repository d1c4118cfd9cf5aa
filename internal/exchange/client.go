package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrConversion is returned when a rate lookup or conversion cannot complete.
var ErrConversion = errors.New("currency conversion failed")

// Client converts amounts into a fixed target currency using a public
// exchange rate API.
type Client struct {
	client  *http.Client
	baseURL string
	target  string
}

// NewClient builds a converter toward the given target currency.
func NewClient(client *http.Client, baseURL, target string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		target:  strings.ToUpper(strings.TrimSpace(target)),
	}
}

// Target reports the currency all amounts are converted into.
func (c *Client) Target() string {
	return c.target
}

// Convert turns an amount in the source currency into the target currency.
// Amounts already in the target currency pass through unchanged.
func (c *Client) Convert(ctx context.Context, amount float64, from string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	if from == "" {
		return 0, fmt.Errorf("%w: missing source currency", ErrConversion)
	}
	if from == c.target {
		return amount, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest/"+from, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrConversion, resp.StatusCode)
	}

	var payload struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if payload.Result != "success" {
		return 0, fmt.Errorf("%w: result %q", ErrConversion, payload.Result)
	}

	rate, ok := payload.Rates[c.target]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no rate %s->%s", ErrConversion, from, c.target)
	}

	return amount * rate, nil
}
