package dto

import "encoding/json"

// FavoriteRequest is the payload used to save a hotel.
type FavoriteRequest struct {
	HotelID string          `json:"hotel_id" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}
