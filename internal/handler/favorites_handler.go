package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayscout/hotel-search-api/internal/dto"
	"github.com/stayscout/hotel-search-api/internal/middleware"
	"github.com/stayscout/hotel-search-api/internal/repository"
	"github.com/stayscout/hotel-search-api/internal/service"
)

// FavoritesHandler exposes saved-hotel endpoints.
type FavoritesHandler struct {
	favorites *service.FavoritesService
}

// NewFavoritesHandler constructs a FavoritesHandler.
func NewFavoritesHandler(favorites *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// List handles GET /favorites requests.
func (h *FavoritesHandler) List(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	favorites, err := h.favorites.List(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list favorites")
	}

	return Success(c, http.StatusOK, "favorites loaded", favorites)
}

// Save handles POST /favorites requests.
func (h *FavoritesHandler) Save(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	var req dto.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return Error(c, http.StatusBadRequest, "hotel_id is required")
	}

	favorite, err := h.favorites.Save(c.Request().Context(), userID, req.HotelID, req.Payload)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to save favorite")
	}

	return Success(c, http.StatusCreated, "favorite saved", favorite)
}

// Remove handles DELETE /favorites/:hotel_id requests.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	hotelID := c.Param("hotel_id")
	if hotelID == "" {
		return Error(c, http.StatusBadRequest, "hotel_id is required")
	}

	if err := h.favorites.Remove(c.Request().Context(), userID, hotelID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return Error(c, http.StatusNotFound, "favorite not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to remove favorite")
	}

	return Success(c, http.StatusOK, "favorite removed", nil)
}

func authenticatedUserID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(middleware.UserIDFromContext(c))
}
