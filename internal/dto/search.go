package dto

import "github.com/stayscout/hotel-search-api/internal/search"

// SearchRequest is the payload accepted by the hotel search endpoint.
// Dates use the YYYY-MM-DD format.
type SearchRequest struct {
	City      string   `json:"city" validate:"required"`
	CheckIn   string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	Adults    int      `json:"adults" validate:"omitempty,min=1"`
	Budget    *float64 `json:"budget,omitempty" validate:"omitempty,gt=0"`
	MinRating *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// SearchResponse wraps the enriched hotels returned for a search.
type SearchResponse struct {
	Results []search.Hotel `json:"results"`
}
