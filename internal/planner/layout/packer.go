package layout

import (
	"math"

	"floorplanner/internal/planner/catalog"
)

// ============================================================
// Row Packer
// ============================================================

type Cursor struct {
	X         float64
	Y         float64
	RowHeight float64
}

type Placement struct {
	Item   Item
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RowPacker places rectangles left to right and wraps to a new row when the
// next one would cross the right margin. Rows only grow downwards, so
// placements never overlap.
type RowPacker struct {
	width  float64
	cursor Cursor
	inRow  int
}

func NewRowPacker(overallWidth float64) *RowPacker {
	return &RowPacker{
		width:  overallWidth,
		cursor: Cursor{X: catalog.Margin, Y: catalog.Margin},
	}
}

func (p *RowPacker) Cursor() Cursor {
	return p.cursor
}

// Place puts item at the cursor, wrapping first if it does not fit. An item
// wider than the whole row is placed on its own row rather than wrapped forever.
// Items marked StayInRow never wrap.
func (p *RowPacker) Place(item Item, size catalog.Archetype) Placement {
	if !item.StayInRow && p.inRow > 0 && p.cursor.X+size.Width > p.width-catalog.Margin {
		p.wrap()
	}

	x := p.cursor.X
	if item.PinEast {
		x = math.Max(x, p.width-size.Width-catalog.Margin)
	}

	placed := Placement{
		Item:   item,
		X:      x,
		Y:      p.cursor.Y,
		Width:  size.Width,
		Height: size.Height,
	}

	p.cursor.X = x + size.Width + catalog.WallThickness
	p.cursor.RowHeight = math.Max(p.cursor.RowHeight, size.Height)
	p.inRow++

	return placed
}

// NextZone starts a new row below everything placed so far, plus gap.
func (p *RowPacker) NextZone(gap float64) {
	p.cursor.X = catalog.Margin
	p.cursor.Y += p.cursor.RowHeight + catalog.WallThickness + gap
	p.cursor.RowHeight = 0
	p.inRow = 0
}

func (p *RowPacker) wrap() {
	p.cursor.X = catalog.Margin
	p.cursor.Y += p.cursor.RowHeight + catalog.WallThickness
	p.cursor.RowHeight = 0
	p.inRow = 0
}
