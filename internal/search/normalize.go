package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/stayscout/hotel-search-api/internal/amadeus"
)

// normalizeHotel turns the loosely typed upstream property block into a
// Hotel with parsed optional fields. Price and transit are attached later.
func normalizeHotel(raw amadeus.Hotel) Hotel {
	hotel := Hotel{
		PropertyID: raw.HotelID,
		Name:       strings.TrimSpace(raw.Name),
		Rating:     parseRating(raw.Rating),
		Website:    normalizeWebsite(raw.Website),
	}
	if raw.Contact != nil {
		hotel.Phone = normalizePhone(raw.Contact.Phone)
	}
	if raw.GeoCode != nil {
		lat, lng := raw.GeoCode.Latitude, raw.GeoCode.Longitude
		hotel.Latitude = &lat
		hotel.Longitude = &lng
	}
	return hotel
}

// parseRating parses the upstream rating string, rounded to one decimal.
// Unparseable values are treated as absent.
func parseRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	v = roundTo(v, 1)
	return &v
}

// parsePrice parses a decimal price string, absent when unparseable.
func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeWebsite validates the hotel website, punycoding the host so
// internationalized domains survive serialization. Invalid values are dropped.
func normalizeWebsite(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return nil
	}

	host, err := idna.Lookup.ToASCII(parsed.Hostname())
	if err != nil {
		return nil
	}
	if port := parsed.Port(); port != "" {
		parsed.Host = host + ":" + port
	} else {
		parsed.Host = host
	}

	out := parsed.String()
	return &out
}

// normalizePhone formats the contact phone as E.164, absent when invalid.
func normalizePhone(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return nil
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil
	}
	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
