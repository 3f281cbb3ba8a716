// Package layout turns a requirement and a plot into a floor plan.
//
// Generation is a pure function: zone passes are packed row by row, each
// placed room receives its openings, walls are derived from the final room
// list and the result is assembled into a FloorPlan. The same input always
// yields the same plan.
package layout

import (
	"errors"
	"fmt"
	"math"

	"floorplanner/internal/planner/catalog"
	"floorplanner/internal/planner/models"
)

// ErrInvalidRequirement is returned for input outside the generation domain.
var ErrInvalidRequirement = errors.New("invalid requirement")

// ============================================================
// Validation
// ============================================================

func Validate(req models.RequirementSpec, plot models.PlotSurface) error {
	if req.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms must be non-negative, got %d", ErrInvalidRequirement, req.Bedrooms)
	}
	if req.Bathrooms < 0 {
		return fmt.Errorf("%w: bathrooms must be non-negative, got %d", ErrInvalidRequirement, req.Bathrooms)
	}
	if !req.KitchenFacing.IsCardinal() {
		return fmt.Errorf("%w: kitchen facing %q is not north, south, east or west", ErrInvalidRequirement, req.KitchenFacing)
	}
	if !positive(req.PlotArea) {
		return fmt.Errorf("%w: plot area must be positive, got %v", ErrInvalidRequirement, req.PlotArea)
	}
	if !positive(req.BuiltUpArea) {
		return fmt.Errorf("%w: built-up area must be positive, got %v", ErrInvalidRequirement, req.BuiltUpArea)
	}
	if req.BuiltUpArea > req.PlotArea {
		return fmt.Errorf("%w: built-up area %v exceeds plot area %v", ErrInvalidRequirement, req.BuiltUpArea, req.PlotArea)
	}
	if !positive(plot.WidthPx) || !positive(plot.HeightPx) {
		return fmt.Errorf("%w: plot image size must be positive, got %vx%v", ErrInvalidRequirement, plot.WidthPx, plot.HeightPx)
	}
	if !positive(plot.ScalePxPerMeter) {
		return fmt.Errorf("%w: plot scale must be positive, got %v", ErrInvalidRequirement, plot.ScalePxPerMeter)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ============================================================
// Generation
// ============================================================

// TargetDimensions derives the house footprint from the built-up area and
// the plot image's aspect ratio.
func TargetDimensions(req models.RequirementSpec, plot models.PlotSurface) models.Dimensions {
	width := math.Sqrt(req.BuiltUpArea * plot.AspectRatio())
	return models.Dimensions{Width: width, Height: req.BuiltUpArea / width}
}

// Generate produces the floor plan for req on plot.
func Generate(req models.RequirementSpec, plot models.PlotSurface) (*models.FloorPlan, error) {
	if err := Validate(req, plot); err != nil {
		return nil, err
	}

	dims := TargetDimensions(req, plot)
	rooms := packZones(PlanZones(req), dims.Width)

	for i := range rooms {
		PlaceOpenings(&rooms[i], req)
	}

	return Assemble(rooms, dims, plot.ScalePxPerMeter, req.DirectionalCompliance), nil
}

func packZones(zones []ZonePass, width float64) []models.Room {
	packer := NewRowPacker(width)
	var rooms []models.Room

	for i, zone := range zones {
		if i > 0 && !zone.Continue {
			packer.NextZone(zone.Gap)
		}

		for _, item := range zone.Items {
			size, ok := catalog.Lookup(item.Kind)
			if !ok {
				continue
			}
			p := packer.Place(item, size)
			rooms = append(rooms, models.Room{
				ID:     item.ID,
				Kind:   item.Kind,
				Name:   item.Name,
				X:      p.X,
				Y:      p.Y,
				Width:  p.Width,
				Height: p.Height,
				Area:   p.Width * p.Height,
			})
		}
	}

	return rooms
}

// ============================================================
// Plan Assembler
// ============================================================

func Assemble(rooms []models.Room, dims models.Dimensions, scale float64, compliant bool) *models.FloorPlan {
	if rooms == nil {
		rooms = []models.Room{}
	}

	var total float64
	for _, r := range rooms {
		total += r.Area
	}

	return &models.FloorPlan{
		Rooms:                 rooms,
		Walls:                 SynthesizeWalls(dims.Width, dims.Height, rooms),
		Dimensions:            dims,
		ScalePxPerMeter:       scale,
		TotalArea:             total,
		DirectionalCompliance: compliant,
	}
}
