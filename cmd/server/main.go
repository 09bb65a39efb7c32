package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/live-venue-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/live-venue-booking/internal/database"   // MySQL connection helper
	"github.com/iliyamo/live-venue-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/live-venue-booking/internal/middleware" // Response cache and rate limit middleware
	"github.com/iliyamo/live-venue-booking/internal/queue"      // Background booking log consumer
	"github.com/iliyamo/live-venue-booking/internal/recent"     // Recent-views buffer
	"github.com/iliyamo/live-venue-booking/internal/repository" // Data access layer
	"github.com/iliyamo/live-venue-booking/internal/router"     // Route registration
)

func main() {
	// Load .env when present so local development does not require exporting
	// every variable by hand. A missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	// Redis backs the response cache and the rate limiter. A nil client
	// disables both middlewares; the API keeps working without Redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	recentViews := recent.NewLog(recent.DefaultCapacity)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	venueHandler := handler.NewVenueHandler(venueRepo, showRepo, recentViews)
	artistHandler := handler.NewArtistHandler(artistRepo, showRepo, recentViews)
	showHandler := handler.NewShowHandler(showRepo, artistRepo)
	searchHandler := handler.NewSearchHandler(venueRepo, artistRepo)
	homeHandler := handler.NewHomeHandler(recentViews)

	router.RegisterRoutes(e)
	router.RegisterDirectory(e, venueHandler, artistHandler, showHandler, homeHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterSearch(e, searchHandler)

	// Consume show-booked events in the background and append them to the
	// booking log. The consumer reconnects forever on its own.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
