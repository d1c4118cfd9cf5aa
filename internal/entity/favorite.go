package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Favorite is a hotel a user saved from a search result.
// Payload carries the enriched hotel snapshot as returned by the search.
type Favorite struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"-"`
	HotelID   string          `json:"hotel_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
