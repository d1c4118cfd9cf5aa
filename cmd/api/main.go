package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/stayscout/hotel-search-api/internal/amadeus"
	"github.com/stayscout/hotel-search-api/internal/auth"
	"github.com/stayscout/hotel-search-api/internal/config"
	"github.com/stayscout/hotel-search-api/internal/database"
	"github.com/stayscout/hotel-search-api/internal/exchange"
	"github.com/stayscout/hotel-search-api/internal/handler"
	middlewarepkg "github.com/stayscout/hotel-search-api/internal/middleware"
	"github.com/stayscout/hotel-search-api/internal/repository"
	"github.com/stayscout/hotel-search-api/internal/router"
	"github.com/stayscout/hotel-search-api/internal/search"
	"github.com/stayscout/hotel-search-api/internal/service"
	"github.com/stayscout/hotel-search-api/internal/transit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	favoritesRepo := repository.NewPGXFavoritesRepository(pool)
	historyRepo := repository.NewPGXHistoryRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager)
	favoritesService := service.NewFavoritesService(favoritesRepo)
	historyService := service.NewHistoryService(historyRepo)

	inventoryClient := amadeus.NewClient(amadeus.Config{
		BaseURL:      cfg.AmadeusBaseURL,
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		Timeout:      cfg.UpstreamTimeout,
	})

	exchangeClient := exchange.NewClient(
		&http.Client{Timeout: cfg.UpstreamTimeout},
		cfg.ExchangeBaseURL,
		cfg.TargetCurrency,
	)

	locator := buildLocator(cfg)

	aggregator := search.NewAggregator(
		inventoryClient,
		inventoryClient,
		inventoryClient,
		exchangeClient,
		locator,
		search.Config{
			ResultLimit:     cfg.ResultLimit,
			Concurrency:     cfg.SearchConcurrency,
			UpstreamTimeout: cfg.UpstreamTimeout,
		},
	)

	authHandler := handler.NewAuthHandler(authService)
	searchHandler := handler.NewSearchHandler(aggregator, historyService)
	favoritesHandler := handler.NewFavoritesHandler(favoritesService)
	historyHandler := handler.NewHistoryHandler(historyService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:      authHandler,
		Search:    searchHandler,
		Favorites: favoritesHandler,
		History:   historyHandler,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// buildLocator wires the SDK-backed transit locator with the raw web
// service lookup as fallback. Without an API key transit enrichment is
// disabled entirely.
func buildLocator(cfg *config.Config) transit.Locator {
	if cfg.GoogleMapsAPIKey == "" {
		log.Printf("GOOGLE_MAPS_API_KEY not set, transit enrichment disabled")
		return nil
	}

	fallback := transit.NewGeocodeLocator(nil, "", cfg.GoogleMapsAPIKey, cfg.TransitRadiusM)

	primary, err := transit.NewPlacesLocator(cfg.GoogleMapsAPIKey, cfg.TransitRadiusM)
	if err != nil {
		log.Printf("maps client unavailable, using web service locator: %v", err)
		return fallback
	}

	return transit.NewFallbackLocator(primary, fallback)
}
