package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stayscout/hotel-search-api/internal/amadeus"
	"github.com/stayscout/hotel-search-api/internal/transit"
)

var (
	// ErrDestinationNotFound is returned when the destination cannot be resolved.
	ErrDestinationNotFound = errors.New("destination not found")
	// ErrNoInventory is returned when the destination has no listed properties.
	ErrNoInventory = errors.New("no inventory for destination")
)

// Request carries one hotel search.
type Request struct {
	City      string
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	Budget    *float64
	MinRating *float64
}

// Validate rejects malformed requests before any upstream call is made.
func (r Request) Validate() error {
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("city must not be empty")
	}
	if r.Adults < 1 {
		return fmt.Errorf("adults must be at least 1")
	}
	if !r.CheckOut.After(r.CheckIn) {
		return fmt.Errorf("check-out must be after check-in")
	}
	return nil
}

// Hotel is one normalized, enriched search result.
type Hotel struct {
	PropertyID         string   `json:"property_id"`
	Name               string   `json:"name"`
	Price              *float64 `json:"price"`
	Currency           string   `json:"source_currency,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	Website            *string  `json:"website,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	TransitName        *string  `json:"transit_name,omitempty"`
	TransitMinutes     *int     `json:"transit_minutes,omitempty"`
	TransportAvailable bool     `json:"transport_available"`
}

// LocationResolver maps a free-text city name to a location code.
type LocationResolver interface {
	ResolveCity(ctx context.Context, city string) (string, error)
}

// InventoryIndex lists candidate properties for a location code.
type InventoryIndex interface {
	ListHotelIDs(ctx context.Context, cityCode string) ([]string, error)
}

// OfferFetcher retrieves raw offers for one property and stay.
type OfferFetcher interface {
	SearchOffers(ctx context.Context, hotelID, checkIn, checkOut string, adults int) (*amadeus.HotelOffers, error)
}

// Converter converts an amount from a source currency into the deployment's
// target currency.
type Converter interface {
	Convert(ctx context.Context, amount float64, from string) (float64, error)
}

// Config tunes the aggregation run.
type Config struct {
	ResultLimit     int
	Concurrency     int
	UpstreamTimeout time.Duration
}

// Aggregator composes the upstream clients into the end-to-end search.
type Aggregator struct {
	resolver  LocationResolver
	inventory InventoryIndex
	offers    OfferFetcher
	converter Converter
	transit   transit.Locator
	cfg       Config
}

// NewAggregator wires the aggregator with its collaborators.
func NewAggregator(resolver LocationResolver, inventory InventoryIndex, offers OfferFetcher, converter Converter, locator transit.Locator, cfg Config) *Aggregator {
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = 5
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 10 * time.Second
	}
	return &Aggregator{
		resolver:  resolver,
		inventory: inventory,
		offers:    offers,
		converter: converter,
		transit:   locator,
		cfg:       cfg,
	}
}

// Search resolves the destination, fans out offer fetches across candidate
// properties and returns normalized, filtered results in discovery order.
// Per-offer failures degrade the result instead of failing the search.
func (a *Aggregator) Search(ctx context.Context, req Request) ([]Hotel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := a.resolveCity(ctx, req.City)
	if err != nil {
		return nil, err
	}

	candidates, err := a.listCandidates(ctx, code)
	if err != nil {
		return nil, err
	}

	checkIn := req.CheckIn.Format("2006-01-02")
	checkOut := req.CheckOut.Format("2006-01-02")

	results := make([]Hotel, 0, a.cfg.ResultLimit)
	for start := 0; start < len(candidates) && len(results) < a.cfg.ResultLimit; start += a.cfg.Concurrency {
		end := start + a.cfg.Concurrency
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]

		fetched := a.fetchBatch(ctx, batch, checkIn, checkOut, req.Adults)

		for _, offers := range fetched {
			if offers == nil {
				continue
			}
			a.mergeOffers(ctx, req, offers, &results)
			if len(results) >= a.cfg.ResultLimit {
				break
			}
		}
	}

	return results, nil
}

func (a *Aggregator) resolveCity(ctx context.Context, city string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.cfg.UpstreamTimeout)
	defer cancel()

	code, err := a.resolver.ResolveCity(callCtx, city)
	if err != nil {
		log.Printf("search: resolve %q failed: %v", city, err)
		return "", ErrDestinationNotFound
	}
	return code, nil
}

func (a *Aggregator) listCandidates(ctx context.Context, code string) ([]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.cfg.UpstreamTimeout)
	defer cancel()

	candidates, err := a.inventory.ListHotelIDs(callCtx, code)
	if err != nil {
		log.Printf("search: list inventory for %s failed: %v", code, err)
		return nil, ErrNoInventory
	}
	if len(candidates) == 0 {
		return nil, ErrNoInventory
	}
	return candidates, nil
}

// fetchBatch fetches offers for one batch of candidates concurrently. The
// returned slice is index-aligned with the batch so merge order stays equal
// to candidate order. A failed fetch yields a nil entry, never an error.
func (a *Aggregator) fetchBatch(ctx context.Context, batch []string, checkIn, checkOut string, adults int) []*amadeus.HotelOffers {
	fetched := make([]*amadeus.HotelOffers, len(batch))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, id := range batch {
		i, id := i, id
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(groupCtx, a.cfg.UpstreamTimeout)
			defer cancel()

			offers, err := a.offers.SearchOffers(callCtx, id, checkIn, checkOut, adults)
			if err != nil {
				log.Printf("search: offers for %s failed: %v", id, err)
				return nil
			}
			fetched[i] = offers
			return nil
		})
	}
	g.Wait()

	return fetched
}

func (a *Aggregator) mergeOffers(ctx context.Context, req Request, offers *amadeus.HotelOffers, results *[]Hotel) {
	for _, offer := range offers.Offers {
		hotel := normalizeHotel(offers.Hotel)
		hotel.Currency = offer.Price.Currency
		hotel.Price = a.convertPrice(ctx, offer.Price)

		if req.Budget != nil && hotel.Price != nil && *hotel.Price > *req.Budget {
			continue
		}
		if req.MinRating != nil && (hotel.Rating == nil || *hotel.Rating < *req.MinRating) {
			continue
		}

		a.attachTransit(ctx, &hotel)

		*results = append(*results, hotel)
		if len(*results) >= a.cfg.ResultLimit {
			return
		}
	}
}

// convertPrice parses and converts one offer price. Failures leave the
// price unknown rather than dropping the offer.
func (a *Aggregator) convertPrice(ctx context.Context, price amadeus.Price) *float64 {
	amount := parsePrice(price.Total)
	if amount == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.UpstreamTimeout)
	defer cancel()

	converted, err := a.converter.Convert(callCtx, *amount, price.Currency)
	if err != nil {
		log.Printf("search: convert %s %s failed: %v", price.Total, price.Currency, err)
		return nil
	}

	converted = roundTo(converted, 2)
	return &converted
}

// attachTransit annotates the hotel with its nearest transit station.
// Lookup failures leave the hotel without transport data.
func (a *Aggregator) attachTransit(ctx context.Context, hotel *Hotel) {
	if a.transit == nil || hotel.Latitude == nil || hotel.Longitude == nil {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.UpstreamTimeout)
	defer cancel()

	hit, err := a.transit.Nearest(callCtx, *hotel.Latitude, *hotel.Longitude)
	if err != nil {
		log.Printf("search: transit lookup for %s failed: %v", hotel.PropertyID, err)
		return
	}
	if hit == nil {
		return
	}

	hotel.TransitName = &hit.Name
	hotel.TransitMinutes = hit.Minutes
	hotel.TransportAvailable = hit.Minutes != nil
}
