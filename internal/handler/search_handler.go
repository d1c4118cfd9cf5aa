package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayscout/hotel-search-api/internal/dto"
	"github.com/stayscout/hotel-search-api/internal/entity"
	"github.com/stayscout/hotel-search-api/internal/middleware"
	"github.com/stayscout/hotel-search-api/internal/search"
	"github.com/stayscout/hotel-search-api/internal/service"
)

const dateLayout = "2006-01-02"

// Searcher runs one hotel search end to end.
type Searcher interface {
	Search(ctx context.Context, req search.Request) ([]search.Hotel, error)
}

// SearchHandler exposes the hotel search endpoint.
type SearchHandler struct {
	searcher Searcher
	history  *service.HistoryService
}

// NewSearchHandler constructs a SearchHandler. The history service is
// optional; without it searches are simply not recorded.
func NewSearchHandler(searcher Searcher, history *service.HistoryService) *SearchHandler {
	return &SearchHandler{searcher: searcher, history: history}
}

// Search handles POST /hotels/search requests.
func (h *SearchHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return Error(c, http.StatusBadRequest, "city and valid check-in/check-out dates are required")
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return Error(c, http.StatusBadRequest, "check_in must be a YYYY-MM-DD date")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return Error(c, http.StatusBadRequest, "check_out must be a YYYY-MM-DD date")
	}
	if !checkOut.After(checkIn) {
		return Error(c, http.StatusBadRequest, "check_out must be after check_in")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return Error(c, http.StatusBadRequest, "check_in must not be in the past")
	}

	adults := req.Adults
	if adults == 0 {
		adults = 1
	}

	searchReq := search.Request{
		City:      req.City,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Adults:    adults,
		Budget:    req.Budget,
		MinRating: req.MinRating,
	}

	results, err := h.searcher.Search(c.Request().Context(), searchReq)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrDestinationNotFound):
			return Error(c, http.StatusNotFound, "destination not found")
		case errors.Is(err, search.ErrNoInventory):
			return Error(c, http.StatusNotFound, "no hotels listed for destination")
		default:
			return Error(c, http.StatusBadGateway, "hotel search failed")
		}
	}

	h.recordHistory(c, searchReq)

	return Success(c, http.StatusOK, "search completed", dto.SearchResponse{Results: results})
}

// recordHistory stores the executed search for the authenticated user.
// Failures are logged, never surfaced.
func (h *SearchHandler) recordHistory(c echo.Context, req search.Request) {
	if h.history == nil {
		return
	}
	userID, err := uuid.Parse(middleware.UserIDFromContext(c))
	if err != nil {
		return
	}

	record := &entity.SearchRecord{
		UserID:    userID,
		City:      req.City,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Adults:    req.Adults,
		Budget:    req.Budget,
		MinRating: req.MinRating,
	}
	if _, err := h.history.Record(c.Request().Context(), record); err != nil {
		log.Printf("search handler: record history failed: %v", err)
	}
}
