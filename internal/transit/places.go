package transit

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// mapsAPI is the slice of the Google Maps client the locator uses.
type mapsAPI interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// PlacesLocator finds transit stations through the Google Maps SDK.
type PlacesLocator struct {
	api    mapsAPI
	radius uint
}

// NewPlacesLocator builds a locator over the official Maps client.
func NewPlacesLocator(apiKey string, radiusMeters int) (*PlacesLocator, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	if radiusMeters <= 0 {
		radiusMeters = 1000
	}
	return &PlacesLocator{api: client, radius: uint(radiusMeters)}, nil
}

// Nearest looks up the closest transit station and the walking time to it.
func (l *PlacesLocator) Nearest(ctx context.Context, lat, lng float64) (*Hit, error) {
	search, err := l.api.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   l.radius,
		Type:     maps.PlaceTypeTransitStation,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}
	if len(search.Results) == 0 {
		return nil, nil
	}

	station := search.Results[0]
	dest := station.Geometry.Location

	matrix, err := l.api.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{fmt.Sprintf("%f,%f", lat, lng)},
		Destinations: []string{fmt.Sprintf("%f,%f", dest.Lat, dest.Lng)},
		Mode:         maps.TravelModeWalking,
	})
	if err != nil {
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

	minutes := int((element.Duration + 30*time.Second) / time.Minute)
	hit.Minutes = &minutes
	hit.DurationText = fmt.Sprintf("%d mins", minutes)
	hit.DistanceText = element.Distance.HumanReadable
	return hit, nil
}

var _ Locator = (*PlacesLocator)(nil)
