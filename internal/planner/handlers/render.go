package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
	"floorplanner/internal/planner/scene"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render & Export Handlers
// ============================================================

func (h *PlanHandler) RenderSVG(c fiber.Ctx) error {
	rec, view, size, err := h.renderInput(c)
	if err != nil {
		return h.fail(c, err)
	}

	svg, err := render.RenderSVG(&rec.Plan, view, size.Width, size.Height)
	if err != nil {
		return h.fail(c, err)
	}

	c.Set("Content-Type", export.FormatSVG.ContentType())
	return c.SendString(svg)
}

func (h *PlanHandler) RenderPNG(c fiber.Ctx) error {
	rec, view, size, err := h.renderInput(c)
	if err != nil {
		return h.fail(c, err)
	}

	var buf bytes.Buffer
	if err := render.RenderPNG(&buf, &rec.Plan, view, size.Width, size.Height); err != nil {
		return h.fail(c, err)
	}

	c.Set("Content-Type", export.FormatPNG.ContentType())
	return c.Send(buf.Bytes())
}

// renderInput loads the plan and resolves the view: the stored view with
// zoom, panX and panY query overrides, on a canvas of width x height.
func (h *PlanHandler) renderInput(c fiber.Ctx) (*models.PlanRecord, render.ViewState, Canvas, error) {
	id := c.Params("id")
	rec, err := h.repo.Get(c.Context(), id)
	if err != nil {
		return nil, render.ViewState{}, Canvas{}, err
	}

	view := h.views.Get(id)
	size := h.canvas

	floats := []struct {
		key string
		dst *float64
	}{
		{"zoom", &view.Zoom},
		{"panX", &view.PanX},
		{"panY", &view.PanY},
	}
	for _, q := range floats {
		if v := c.Query(q.key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, view, size, fmt.Errorf("%w: %s=%q", errBadQuery, q.key, v)
			}
			*q.dst = f
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &size.Width},
		{"height", &size.Height},
	}
	for _, q := range ints {
		if v := c.Query(q.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, view, size, fmt.Errorf("%w: %s=%q", errBadQuery, q.key, v)
			}
			if n > MaxCanvasSide {
				return nil, view, size, fmt.Errorf("%w: %s=%d exceeds %d", errBadQuery, q.key, n, MaxCanvasSide)
			}
			*q.dst = n
		}
	}

	return rec, view.Normalized(), size, nil
}

// Export streams the plan as a downloadable file.
func (h *PlanHandler) Export(c fiber.Ctx) error {
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return h.fail(c, err)
	}

	rec, err := h.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	now := h.now()
	var buf bytes.Buffer

	switch format {
	case export.FormatJSON:
		err = export.Encode(&buf, export.NewDocument(&rec.Plan, rec.Requirements, now))
	case export.FormatSVG:
		var svg string
		svg, err = render.RenderSVG(&rec.Plan, render.DefaultView(), h.canvas.Width, h.canvas.Height)
		buf.WriteString(svg)
	case export.FormatPNG:
		err = render.RenderPNG(&buf, &rec.Plan, render.DefaultView(), h.canvas.Width, h.canvas.Height)
	}
	if err != nil {
		return h.fail(c, err)
	}

	h.logger.Info("plan exported", "plan", rec.ID, "format", format, "bytes", buf.Len())
	c.Attachment(export.FileName(now, format))
	c.Set("Content-Type", format.ContentType())
	return c.Send(buf.Bytes())
}

// Scene returns the plan as a react-planner scene.
func (h *PlanHandler) Scene(c fiber.Ctx) error {
	rec, err := h.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	s, err := scene.NewBuilder().Build(&rec.Plan)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

// ============================================================
// View Handlers
// ============================================================

type viewRequest struct {
	Action string           `json:"action"`
	DX     float64          `json:"dx"`
	DY     float64          `json:"dy"`
	Path   []render.Pointer `json:"path"`
}

func (h *PlanHandler) GetView(c fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.repo.Get(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.views.Get(id))
}

// UpdateView applies one of zoomIn, zoomOut, pan, drag or reset.
func (h *PlanHandler) UpdateView(c fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.repo.Get(c.Context(), id); err != nil {
		return h.fail(c, err)
	}

	var req viewRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	var view render.ViewState
	switch req.Action {
	case "zoomIn":
		view = h.views.Update(id, render.ViewState.ZoomIn)
	case "zoomOut":
		view = h.views.Update(id, render.ViewState.ZoomOut)
	case "pan":
		view = h.views.Update(id, func(v render.ViewState) render.ViewState { return v.Pan(req.DX, req.DY) })
	case "drag":
		view = h.views.Drag(id, req.Path)
	case "reset":
		view = h.views.Reset(id)
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unknown view action %q", req.Action)})
	}

	return c.JSON(view)
}
