package render

// ============================================================
// Drawing surface
// ============================================================

// Stroke describes a line style in device pixels.
type Stroke struct {
	Color string
	Width float64
}

// TextStyle describes a centered text label. Rotation is in radians around
// the anchor point.
type TextStyle struct {
	Color    string
	Size     float64
	Rotation float64
}

// Surface is a fixed-size 2D target. All coordinates are device pixels; the
// projector applies the view transform before calling it.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillRect(x, y, w, h float64, color string)
	StrokeRect(x, y, w, h float64, s Stroke)
	StrokeLine(x1, y1, x2, y2 float64, s Stroke)
	Text(x, y float64, text string, t TextStyle)
}

// ============================================================
// Recording surface
// ============================================================

type OpKind string

const (
	OpClear      OpKind = "clear"
	OpFillRect   OpKind = "fill-rect"
	OpStrokeRect OpKind = "stroke-rect"
	OpStrokeLine OpKind = "stroke-line"
	OpText       OpKind = "text"
)

type Op struct {
	Kind   OpKind
	Coords []float64
	Color  string
	Width  float64
	Text   string
}

// Recorder keeps every draw call in order. Useful for inspecting the draw
// sequence without rasterizing.
type Recorder struct {
	Width  int
	Height int
	Ops    []Op
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Coords: []float64{x, y, w, h}, Color: color})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Coords: []float64{x, y, w, h}, Color: s.Color, Width: s.Width})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, Coords: []float64{x1, y1, x2, y2}, Color: s.Color, Width: s.Width})
}

func (r *Recorder) Text(x, y float64, text string, t TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Coords: []float64{x, y}, Color: t.Color, Width: t.Size, Text: text})
}
