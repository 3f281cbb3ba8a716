// Package export serializes generated plans for download.
//
// JSON is the canonical format. SVG and PNG are produced by the render
// package; PDF and DXF are placeholders and report ErrUnsupportedFormat.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"floorplanner/internal/planner/models"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatDXF  Format = "dxf"
)

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case FormatJSON, FormatSVG, FormatPNG:
		return f, nil
	case FormatPDF, FormatDXF:
		return f, fmt.Errorf("%w: %s is not implemented", ErrUnsupportedFormat, f)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// FileName builds the download name, e.g. floor-plan-1700000000000.json.
func FileName(at time.Time, f Format) string {
	return fmt.Sprintf("floor-plan-%d.%s", at.UnixMilli(), f)
}

// ============================================================
// JSON document
// ============================================================

type Summary struct {
	Dimensions    models.Dimensions `json:"dimensions"`
	TotalArea     float64           `json:"totalArea"`
	Scale         float64           `json:"scale"`
	VastCompliant bool              `json:"vastCompliant"`
}

type RoomRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Coordinates models.Point      `json:"coordinates"`
	Dimensions  models.Dimensions `json:"dimensions"`
	Area        float64           `json:"area"`
	Orientation models.Facing     `json:"orientation"`
	Doors       []models.Opening  `json:"doors"`
	Windows     []models.Opening  `json:"windows"`
}

type Document struct {
	FloorPlan    Summary                `json:"floorPlan"`
	Rooms        []RoomRecord           `json:"rooms"`
	Requirements models.RequirementSpec `json:"requirements"`
	Generated    string                 `json:"generated"`
}

// timestampLayout matches ISO-8601 with milliseconds in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func NewDocument(plan *models.FloorPlan, req models.RequirementSpec, generated time.Time) Document {
	doc := Document{
		FloorPlan: Summary{
			Dimensions:    plan.Dimensions,
			TotalArea:     plan.TotalArea,
			Scale:         plan.ScalePxPerMeter,
			VastCompliant: plan.DirectionalCompliance,
		},
		Rooms:        make([]RoomRecord, 0, len(plan.Rooms)),
		Requirements: req,
		Generated:    generated.UTC().Format(timestampLayout),
	}

	for _, r := range plan.Rooms {
		doc.Rooms = append(doc.Rooms, RoomRecord{
			ID:          r.ID,
			Name:        r.Name,
			Coordinates: models.Point{X: r.X, Y: r.Y},
			Dimensions:  models.Dimensions{Width: r.Width, Height: r.Height},
			Area:        r.Area,
			Orientation: r.Facing,
			Doors:       nonNil(r.Doors),
			Windows:     nonNil(r.Windows),
		})
	}

	return doc
}

func nonNil(o []models.Opening) []models.Opening {
	if o == nil {
		return []models.Opening{}
	}
	return o
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// GeneratedAt parses the document timestamp.
func (d *Document) GeneratedAt() (time.Time, error) {
	return time.Parse(timestampLayout, d.Generated)
}
