package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/layout"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
	"floorplanner/internal/planner/repository"
	"floorplanner/internal/planner/service"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Plan Handler
// ============================================================

// PlanRepository is the storage the handler reads plans from.
type PlanRepository interface {
	Get(ctx context.Context, id string) (*models.PlanRecord, error)
	List(ctx context.Context) ([]repository.PlanSummary, error)
	Delete(ctx context.Context, id string) error
}

type PlanHandler struct {
	repo   PlanRepository
	jobs   *service.JobManager
	views  *service.ViewRegistry
	canvas Canvas
	logger *log.Logger
	now    func() time.Time
}

// Canvas is the default drawing surface size for rendered images.
type Canvas struct {
	Width  int
	Height int
}

// MaxCanvasSide bounds either side of a rendered image, in pixels.
const MaxCanvasSide = 4096

func NewPlanHandler(repo PlanRepository, jobs *service.JobManager, views *service.ViewRegistry, canvas Canvas, logger *log.Logger) *PlanHandler {
	if canvas.Width <= 0 || canvas.Height <= 0 || canvas.Width > MaxCanvasSide || canvas.Height > MaxCanvasSide {
		canvas = Canvas{Width: render.DefaultCanvasWidth, Height: render.DefaultCanvasHeight}
	}
	return &PlanHandler{
		repo:   repo,
		jobs:   jobs,
		views:  views,
		canvas: canvas,
		logger: logger,
		now:    time.Now,
	}
}

// Register mounts every planner route on r.
func (h *PlanHandler) Register(r fiber.Router) {
	r.Post("/plans", h.Create)
	r.Get("/plans", h.List)
	r.Get("/plans/:id", h.Get)
	r.Delete("/plans/:id", h.Delete)
	r.Get("/plans/:id/scene", h.Scene)
	r.Get("/plans/:id/export/:format", h.Export)
	r.Get("/plans/:id/render.svg", h.RenderSVG)
	r.Get("/plans/:id/render.png", h.RenderPNG)
	r.Get("/plans/:id/view", h.GetView)
	r.Post("/plans/:id/view", h.UpdateView)
	r.Get("/jobs/:id", h.GetJob)
}

type createResponse struct {
	JobID  string            `json:"jobId"`
	PlanID string            `json:"planId"`
	Status service.JobStatus `json:"status"`
}

// Create generates the plan right away and hands it to a processing job.
func (h *PlanHandler) Create(c fiber.Ctx) error {
	req, err := parseCreateRequest(c)
	if err != nil {
		h.logger.Warn("bad create request", "err", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := layout.Generate(req.Requirements, req.Plot)
	if err != nil {
		return h.fail(c, err)
	}

	rec := &models.PlanRecord{
		ID:           uuid.NewString(),
		Requirements: req.Requirements,
		Plot:         req.Plot,
		Plan:         *plan,
		CreatedAt:    h.now(),
	}
	h.logger.Info("plan generated", "plan", rec.ID, "rooms", len(plan.Rooms), "area", plan.TotalArea)

	job, err := h.jobs.Submit(c.Context(), rec)
	if err != nil {
		return h.fail(c, err)
	}

	status := http.StatusAccepted
	if job.Status == service.JobCompleted {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(createResponse{JobID: job.ID, PlanID: job.PlanID, Status: job.Status})
}

func (h *PlanHandler) GetJob(c fiber.Ctx) error {
	job, ok := h.jobs.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

func (h *PlanHandler) List(c fiber.Ctx) error {
	plans, err := h.repo.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (h *PlanHandler) Get(c fiber.Ctx) error {
	rec, err := h.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rec.Plan)
}

func (h *PlanHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	h.views.Forget(id)
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Errors
// ============================================================

var errBadQuery = errors.New("bad query parameter")

func statusFor(err error) int {
	switch {
	case errors.Is(err, layout.ErrInvalidRequirement),
		errors.Is(err, render.ErrRenderTargetUnavailable),
		errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (h *PlanHandler) fail(c fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	} else {
		h.logger.Debug("request rejected", "path", c.Path(), "status", status, "err", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
