package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logging"
	"floorplanner/internal/common/middleware"
	"floorplanner/internal/gateway/handlers"
	"floorplanner/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel)).WithPrefix("gateway")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Planner Gateway",
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	client := &http.Client{Timeout: 2 * time.Second}
	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(cfg.PlannerURL, client))
	app.Get("/health/startup", handlers.StartupProbe)

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Floor Planner API v1",
			"status":  "ok",
		})
	})

	proxy.New(cfg.PlannerURL, time.Duration(cfg.WriteTimeout)*time.Second, logger).Mount(api)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting gateway", "addr", addr, "env", cfg.Environment, "planner", cfg.PlannerURL)

	if err := app.Listen(addr); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
