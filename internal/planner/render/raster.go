package render

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ============================================================
// Raster surface
// ============================================================

const background = "#f9fafb"

// labelFont is parsed once; faces are cut from it per size.
var labelFont, _ = truetype.Parse(goregular.TTF)

// RasterSurface draws onto an in-memory RGBA image.
type RasterSurface struct {
	dc    *gg.Context
	faces map[float64]font.Face
}

func NewRasterSurface(width, height int) *RasterSurface {
	if width <= 0 || height <= 0 {
		return &RasterSurface{}
	}
	return &RasterSurface{dc: gg.NewContext(width, height), faces: make(map[float64]font.Face)}
}

func (s *RasterSurface) Size() (int, int) {
	if s.dc == nil {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

func (s *RasterSurface) Clear() {
	s.dc.SetHexColor(background)
	s.dc.Clear()
}

func (s *RasterSurface) FillRect(x, y, w, h float64, color string) {
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetHexColor(color)
	s.dc.Fill()
}

func (s *RasterSurface) StrokeRect(x, y, w, h float64, st Stroke) {
	s.dc.DrawRectangle(x, y, w, h)
	s.stroke(st)
}

func (s *RasterSurface) StrokeLine(x1, y1, x2, y2 float64, st Stroke) {
	s.dc.DrawLine(x1, y1, x2, y2)
	s.stroke(st)
}

func (s *RasterSurface) stroke(st Stroke) {
	s.dc.SetHexColor(st.Color)
	s.dc.SetLineWidth(st.Width)
	s.dc.Stroke()
}

// Text draws with Go Regular at t.Size pixels, rounded to a quarter pixel.
func (s *RasterSurface) Text(x, y float64, text string, t TextStyle) {
	s.dc.Push()
	defer s.dc.Pop()

	if face := s.face(t.Size); face != nil {
		s.dc.SetFontFace(face)
	}
	if t.Rotation != 0 {
		s.dc.RotateAbout(t.Rotation, x, y)
	}
	s.dc.SetHexColor(t.Color)
	s.dc.DrawStringAnchored(text, x, y, 0.5, 0)
}

func (s *RasterSurface) face(size float64) font.Face {
	if labelFont == nil || size <= 0 {
		return nil
	}
	size = math.Round(size*4) / 4
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(labelFont, &truetype.Options{Size: size})
	s.faces[size] = f
	return f
}
