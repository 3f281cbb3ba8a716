package render

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// ============================================================
// SVG surface
// ============================================================

// SVGSurface collects draw calls as SVG elements.
type SVGSurface struct {
	width    int
	height   int
	elements []string
}

func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

func (s *SVGSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *SVGSurface) Clear() {
	s.elements = s.elements[:0]
}

func (s *SVGSurface) FillRect(x, y, w, h float64, color string) {
	s.elements = append(s.elements, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
		formatCoord(x), formatCoord(y), formatCoord(w), formatCoord(h), color))
}

func (s *SVGSurface) StrokeRect(x, y, w, h float64, st Stroke) {
	s.elements = append(s.elements, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s" />`,
		formatCoord(x), formatCoord(y), formatCoord(w), formatCoord(h), st.Color, formatCoord(st.Width)))
}

func (s *SVGSurface) StrokeLine(x1, y1, x2, y2 float64, st Stroke) {
	s.elements = append(s.elements, fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="square" />`,
		formatCoord(x1), formatCoord(y1), formatCoord(x2), formatCoord(y2), st.Color, formatCoord(st.Width)))
}

func (s *SVGSurface) Text(x, y float64, text string, t TextStyle) {
	transform := ""
	if t.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`,
			formatCoord(t.Rotation*180/math.Pi), formatCoord(x), formatCoord(y))
	}
	s.elements = append(s.elements, fmt.Sprintf(`<text x="%s" y="%s" fill="%s" font-size="%s" font-family="Inter, sans-serif" text-anchor="middle"%s>%s</text>`,
		formatCoord(x), formatCoord(y), t.Color, formatCoord(t.Size), transform, html.EscapeString(text)))
}

// String returns the complete SVG document.
func (s *SVGSurface) String() string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.width, s.height, s.width, s.height))
	builder.WriteString("\n")

	for _, elem := range s.elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

// formatCoord rounds to 1/1000 px to keep the output stable and short.
func formatCoord(val float64) string {
	return formatFloat(math.Round(val*1000) / 1000)
}
