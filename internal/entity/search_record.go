package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one entry in a user's search history.
type SearchRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	City      string    `json:"city"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Adults    int       `json:"adults"`
	Budget    *float64  `json:"budget,omitempty"`
	MinRating *float64  `json:"min_rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
