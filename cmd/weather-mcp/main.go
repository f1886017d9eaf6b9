package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/yuchenw/weather-mcp/internal/api/http"
	"github.com/yuchenw/weather-mcp/internal/cache"
	"github.com/yuchenw/weather-mcp/internal/config"
	"github.com/yuchenw/weather-mcp/internal/janitor"
	"github.com/yuchenw/weather-mcp/internal/weather"
	"github.com/yuchenw/weather-mcp/internal/weather/sources"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Bounded TTL cache plus a periodic sweep of expired entries.
	snapshotCache := cache.New(cfg.CacheCapacity, cfg.CacheTTL, cache.Policy(cfg.CachePolicy))

	reaper := janitor.New(snapshotCache, cfg.SweepInterval)
	if err := reaper.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer reaper.Stop()

	// Primary and fallback data sources.
	primary := sources.NewQWeatherSource(httpClient, cfg.BearerToken, cfg.APIBaseURL, cfg.DefaultLocation)
	fallback := sources.NewSyntheticSource()

	// Orchestrator composing cache, sources, and write-through.
	service := weather.NewService(snapshotCache, primary, fallback, cfg.HTTPTimeout)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-mcp",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error_code": code,
				"message":    err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	log.Printf("INFO: weather-mcp listening on :%s (mode=%s)", cfg.Port, service.Mode())

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
