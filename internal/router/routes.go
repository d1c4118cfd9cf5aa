package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayscout/hotel-search-api/internal/auth"
	"github.com/stayscout/hotel-search-api/internal/config"
	"github.com/stayscout/hotel-search-api/internal/handler"
	middlewarepkg "github.com/stayscout/hotel-search-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Search    *handler.SearchHandler
	Favorites *handler.FavoritesHandler
	History   *handler.HistoryHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.GET("/account", handlers.Auth.Account)

	secured.POST("/hotels/search", handlers.Search.Search, middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))

	secured.GET("/favorites", handlers.Favorites.List)
	secured.POST("/favorites", handlers.Favorites.Save)
	secured.DELETE("/favorites/:hotel_id", handlers.Favorites.Remove)

	secured.GET("/history", handlers.History.List)
}
