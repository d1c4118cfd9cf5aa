package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayscout/hotel-search-api/internal/entity"
)

// ErrFavoriteNotFound is returned when no favorite matches the lookup criteria.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoritesRepository declares persistence operations for saved hotels.
type FavoritesRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error)
	Upsert(ctx context.Context, userID uuid.UUID, hotelID string, payload json.RawMessage) (*entity.Favorite, error)
	Delete(ctx context.Context, userID uuid.UUID, hotelID string) error
}

// PGXFavoritesRepository implements FavoritesRepository with pgx.
type PGXFavoritesRepository struct {
	pool pgxPool
}

// NewPGXFavoritesRepository instantiates a favorites repository.
func NewPGXFavoritesRepository(pool *pgxpool.Pool) *PGXFavoritesRepository {
	return &PGXFavoritesRepository{pool: pool}
}

// ListByUser returns the user's saved hotels, most recent first.
func (r *PGXFavoritesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, hotel_id, payload, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	return scanFavorites(rows)
}

// Upsert saves a hotel for the user, replacing any previous payload for the same hotel.
func (r *PGXFavoritesRepository) Upsert(ctx context.Context, userID uuid.UUID, hotelID string, payload json.RawMessage) (*entity.Favorite, error) {
	if hotelID == "" {
		return nil, fmt.Errorf("hotel id must not be empty")
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO favorites (user_id, hotel_id, payload)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, hotel_id) DO UPDATE SET payload = EXCLUDED.payload
        RETURNING id, user_id, hotel_id, payload, created_at
    `, userID, hotelID, payload)

	var fav entity.Favorite
	if err := row.Scan(&fav.ID, &fav.UserID, &fav.HotelID, &fav.Payload, &fav.CreatedAt); err != nil {
		return nil, fmt.Errorf("upsert favorite: %w", err)
	}

	return &fav, nil
}

// Delete removes a saved hotel for the user.
func (r *PGXFavoritesRepository) Delete(ctx context.Context, userID uuid.UUID, hotelID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND hotel_id = $2`, userID, hotelID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func scanFavorites(rows pgx.Rows) ([]entity.Favorite, error) {
	var favorites []entity.Favorite
	for rows.Next() {
		var fav entity.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.HotelID, &fav.Payload, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}
