package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayscout/hotel-search-api/internal/service"
)

// HistoryHandler exposes the search history endpoint.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /history requests.
func (h *HistoryHandler) List(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	records, err := h.history.List(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load history")
	}

	return Success(c, http.StatusOK, "history loaded", records)
}
