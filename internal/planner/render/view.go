package render

import "math"

// ============================================================
// View state
// ============================================================

const (
	MinZoom  = 0.3
	MaxZoom  = 3.0
	ZoomStep = 1.2
)

// ViewState is the interactive zoom and pan of the projection. It never
// changes the plan itself.
type ViewState struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

func DefaultView() ViewState {
	return ViewState{Zoom: 1}
}

func (v ViewState) ZoomIn() ViewState {
	v.Zoom = math.Min(v.Zoom*ZoomStep, MaxZoom)
	return v
}

func (v ViewState) ZoomOut() ViewState {
	v.Zoom = math.Max(v.Zoom/ZoomStep, MinZoom)
	return v
}

// Pan shifts the view by a pixel delta. Pan is not clamped.
func (v ViewState) Pan(dx, dy float64) ViewState {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Normalized clamps the zoom into range; a zero or invalid zoom becomes 1.
func (v ViewState) Normalized() ViewState {
	if v.Zoom <= 0 || math.IsNaN(v.Zoom) {
		v.Zoom = 1
	}
	v.Zoom = math.Min(math.Max(v.Zoom, MinZoom), MaxZoom)
	return v
}

// ============================================================
// Drag session
// ============================================================

// Pointer is a pointer position in canvas pixels.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragSession tracks pointer deltas between pointer-down and pointer-up and
// applies them to the view it was started on.
type DragSession struct {
	view  *ViewState
	lastX float64
	lastY float64
	done  bool
}

func BeginDrag(view *ViewState, x, y float64) *DragSession {
	return &DragSession{view: view, lastX: x, lastY: y}
}

// Move applies the delta since the previous pointer position.
func (d *DragSession) Move(x, y float64) {
	if d.done {
		return
	}
	*d.view = d.view.Pan(x-d.lastX, y-d.lastY)
	d.lastX, d.lastY = x, y
}

// End stops the session; later moves are ignored.
func (d *DragSession) End() {
	d.done = true
}

func (d *DragSession) Active() bool {
	return !d.done
}
