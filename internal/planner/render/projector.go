// Package render projects a floor plan (meters) onto a pixel surface under
// an interactive zoom/pan view.
//
// The transform is: translate to the canvas centre plus pan, scale by zoom,
// translate by minus half the plan footprint. The plan footprint uses a fixed
// display scale of 25 px/m; the plan's own px/m scale is metadata only.
package render

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"floorplanner/internal/planner/models"
)

// ErrRenderTargetUnavailable is returned when there is nothing to draw on.
var ErrRenderTargetUnavailable = errors.New("render target unavailable")

// DisplayScale is the projection's pixels per meter before zoom.
const DisplayScale = 25.0

const dimensionOffset = 30.0

var roomFills = []string{
	"#fef3c7", "#dcfce7", "#dbeafe", "#f3e8ff", "#fed7d7",
	"#e0e7ff", "#fce7f3", "#f0f9ff", "#f0fdf4", "#fdf2f8",
}

const (
	colorBoundary   = "#374151"
	colorInternal   = "#6b7280"
	colorRoomBorder = "#9ca3af"
	colorDoor       = "#dc2626"
	colorWindow     = "#2563eb"
)

// ============================================================
// Transform
// ============================================================

// Transform maps plan-pixel coordinates (meters × DisplayScale) to device pixels.
type Transform struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

func NewTransform(plan *models.FloorPlan, view ViewState, canvasW, canvasH int) Transform {
	planW := plan.Dimensions.Width * DisplayScale
	planH := plan.Dimensions.Height * DisplayScale

	return Transform{
		Zoom:    view.Zoom,
		OffsetX: float64(canvasW)/2 + view.PanX - view.Zoom*planW/2,
		OffsetY: float64(canvasH)/2 + view.PanY - view.Zoom*planH/2,
	}
}

// Point maps a plan-pixel point to the device.
func (t Transform) Point(x, y float64) (float64, float64) {
	return t.OffsetX + t.Zoom*x, t.OffsetY + t.Zoom*y
}

// Meters maps a point in meters to the device.
func (t Transform) Meters(x, y float64) (float64, float64) {
	return t.Point(x*DisplayScale, y*DisplayScale)
}

// Length scales a plan-pixel length to the device.
func (t Transform) Length(l float64) float64 {
	return t.Zoom * l
}

// ============================================================
// Projector
// ============================================================

type Projector struct {
	surface Surface
}

func NewProjector(surface Surface) *Projector {
	return &Projector{surface: surface}
}

// Draw clears the surface and repaints the whole plan.
func (p *Projector) Draw(plan *models.FloorPlan, view ViewState) error {
	if p.surface == nil {
		return fmt.Errorf("%w: no surface", ErrRenderTargetUnavailable)
	}
	w, h := p.surface.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: surface is %dx%d", ErrRenderTargetUnavailable, w, h)
	}
	if plan == nil {
		return fmt.Errorf("render: floor plan is nil")
	}

	view = view.Normalized()
	t := NewTransform(plan, view, w, h)

	p.surface.Clear()
	p.drawWalls(plan, t)
	for i, room := range plan.Rooms {
		p.drawRoom(i, room, view, t)
	}
	p.drawDimensions(plan, view, t)

	return nil
}

func (p *Projector) drawWalls(plan *models.FloorPlan, t Transform) {
	boundary := Stroke{Color: colorBoundary, Width: t.Length(6)}
	for _, wall := range plan.BoundaryWalls() {
		p.line(t, wall, boundary)
	}

	internal := Stroke{Color: colorInternal, Width: t.Length(2)}
	for _, wall := range plan.InternalWalls() {
		p.line(t, wall, internal)
	}
}

func (p *Projector) line(t Transform, wall models.WallSegment, s Stroke) {
	x1, y1 := t.Meters(wall.X1, wall.Y1)
	x2, y2 := t.Meters(wall.X2, wall.Y2)
	p.surface.StrokeLine(x1, y1, x2, y2, s)
}

func (p *Projector) drawRoom(index int, room models.Room, view ViewState, t Transform) {
	x, y := t.Meters(room.X, room.Y)
	w := t.Length(room.Width * DisplayScale)
	h := t.Length(room.Height * DisplayScale)

	p.surface.FillRect(x, y, w, h, roomFills[index%len(roomFills)])
	p.surface.StrokeRect(x, y, w, h, Stroke{Color: colorRoomBorder, Width: t.Length(1)})

	cx, cy := x+w/2, y+h/2
	p.surface.Text(cx, cy-t.Length(5), room.Name,
		TextStyle{Color: colorBoundary, Size: t.Length(math.Max(10, 12*view.Zoom))})
	p.surface.Text(cx, cy+t.Length(10), formatFloat(room.Area)+" sq.m",
		TextStyle{Color: colorInternal, Size: t.Length(math.Max(8, 10*view.Zoom))})
	p.surface.Text(cx, cy+t.Length(22), formatFloat(room.Width)+"m × "+formatFloat(room.Height)+"m",
		TextStyle{Color: colorRoomBorder, Size: t.Length(math.Max(7, 8*view.Zoom))})

	door := Stroke{Color: colorDoor, Width: t.Length(4)}
	for _, o := range room.Doors {
		p.opening(t, o, door)
	}

	window := Stroke{Color: colorWindow, Width: t.Length(4)}
	for _, o := range room.Windows {
		p.opening(t, o, window)
	}
}

// opening draws an opening as a stroke starting at its anchor.
func (p *Projector) opening(t Transform, o models.Opening, s Stroke) {
	x1, y1 := t.Meters(o.X, o.Y)
	x2, y2 := x1, y1
	if StrokeHorizontal(o.Facing) {
		x2 += t.Length(o.Width * DisplayScale)
	} else {
		y2 += t.Length(o.Width * DisplayScale)
	}
	p.surface.StrokeLine(x1, y1, x2, y2, s)
}

// StrokeHorizontal reports the stroke axis for an opening facing. North and
// south run horizontally, east and west vertically. Diagonals take their
// north/south component; center is drawn vertically.
func StrokeHorizontal(f models.Facing) bool {
	switch f {
	case models.North, models.South,
		models.Northeast, models.Northwest, models.Southeast, models.Southwest:
		return true
	}
	return false
}

func (p *Projector) drawDimensions(plan *models.FloorPlan, view ViewState, t Transform) {
	planW := plan.Dimensions.Width * DisplayScale
	planH := plan.Dimensions.Height * DisplayScale
	s := Stroke{Color: colorBoundary, Width: t.Length(1)}
	label := TextStyle{Color: colorBoundary, Size: t.Length(math.Max(8, 10*view.Zoom))}

	seg := func(x1, y1, x2, y2 float64) {
		ax, ay := t.Point(x1, y1)
		bx, by := t.Point(x2, y2)
		p.surface.StrokeLine(ax, ay, bx, by, s)
	}

	// width, along the bottom
	by := planH + dimensionOffset
	seg(0, by, planW, by)
	seg(0, by-5, 0, by+5)
	seg(planW, by-5, planW, by+5)
	tx, ty := t.Point(planW/2, by+15)
	p.surface.Text(tx, ty, strconv.FormatFloat(plan.Dimensions.Width, 'f', 1, 64)+"m", label)

	// height, along the right
	rx := planW + dimensionOffset
	vertical := label
	vertical.Rotation = -math.Pi / 2
	tx, ty = t.Point(rx+5, planH/2)
	p.surface.Text(tx, ty, strconv.FormatFloat(plan.Dimensions.Height, 'f', 1, 64)+"m", vertical)
	seg(rx, 0, rx, planH)
	seg(rx-5, 0, rx+5, 0)
	seg(rx-5, planH, rx+5, planH)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
