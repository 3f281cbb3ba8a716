package render

import (
	"io"

	"floorplanner/internal/planner/models"
)

// Canvas size of the reference viewer.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// RenderSVG draws plan under view onto a width×height SVG document.
func RenderSVG(plan *models.FloorPlan, view ViewState, width, height int) (string, error) {
	surface := NewSVGSurface(width, height)
	if err := NewProjector(surface).Draw(plan, view); err != nil {
		return "", err
	}
	return surface.String(), nil
}

// RenderPNG draws plan under view and writes a width×height PNG to w.
func RenderPNG(w io.Writer, plan *models.FloorPlan, view ViewState, width, height int) error {
	surface := NewRasterSurface(width, height)
	if err := NewProjector(surface).Draw(plan, view); err != nil {
		return err
	}
	return surface.EncodePNG(w)
}
