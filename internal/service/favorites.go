package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/stayscout/hotel-search-api/internal/entity"
	"github.com/stayscout/hotel-search-api/internal/repository"
)

// FavoritesService manages a user's saved hotels.
type FavoritesService struct {
	favorites repository.FavoritesRepository
}

// NewFavoritesService instantiates a favorites service.
func NewFavoritesService(favorites repository.FavoritesRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

// List returns the user's saved hotels.
func (s *FavoritesService) List(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// Save stores a hotel for the user, replacing a previous save of the same hotel.
func (s *FavoritesService) Save(ctx context.Context, userID uuid.UUID, hotelID string, payload json.RawMessage) (*entity.Favorite, error) {
	return s.favorites.Upsert(ctx, userID, hotelID, payload)
}

// Remove deletes a saved hotel for the user.
func (s *FavoritesService) Remove(ctx context.Context, userID uuid.UUID, hotelID string) error {
	return s.favorites.Delete(ctx, userID, hotelID)
}
