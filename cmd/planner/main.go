package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logging"
	"floorplanner/internal/common/middleware"
	"floorplanner/internal/planner/handlers"
	"floorplanner/internal/planner/repository"
	"floorplanner/internal/planner/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel)).WithPrefix("planner")

	db, err := repository.OpenSQLite(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("open db", "err", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		logger.Fatal("init db", "err", err)
	}

	jobs := service.NewJobManager(repo, cfg.ProcessingDelay, cfg.ProgressInterval, logger.WithPrefix("jobs"))
	defer jobs.Close()

	planHandler := handlers.NewPlanHandler(repo, jobs, service.NewViewRegistry(),
		handlers.Canvas{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight}, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Planner Service",
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

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Planner Routes
	// ============================================================

	planHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting planner", "addr", addr, "env", cfg.Environment,
		"delay", cfg.ProcessingDelay, "canvas", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight))

	if err := app.Listen(addr); err != nil {
		logger.Error("server stopped", "err", err)
	}
}
