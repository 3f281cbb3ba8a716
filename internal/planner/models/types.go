package models

import "time"

// ============================================================
// Directions & room kinds
// ============================================================

type Facing string

const (
	North     Facing = "north"
	South     Facing = "south"
	East      Facing = "east"
	West      Facing = "west"
	Northeast Facing = "northeast"
	Northwest Facing = "northwest"
	Southeast Facing = "southeast"
	Southwest Facing = "southwest"
	Center    Facing = "center"
)

// IsCardinal reports whether f is one of the four compass sides.
func (f Facing) IsCardinal() bool {
	switch f {
	case North, South, East, West:
		return true
	}
	return false
}

type Kind string

const (
	KindMasterBedroom Kind = "master_bedroom"
	KindBedroom       Kind = "bedroom"
	KindLivingRoom    Kind = "living_room"
	KindKitchen       Kind = "kitchen"
	KindDiningRoom    Kind = "dining_room"
	KindBathroom      Kind = "bathroom"
	KindStudyRoom     Kind = "study_room"
	KindPoojaRoom     Kind = "pooja_room"
)

// ============================================================
// Inputs
// ============================================================

// RequirementSpec is what the client asks for. Field names on the wire follow
// the requirements form so exported documents round-trip unchanged.
type RequirementSpec struct {
	Bedrooms              int     `json:"bedrooms"`
	Bathrooms             int     `json:"bathrooms"`
	KitchenFacing         Facing  `json:"kitchenOrientation"`
	LivingRoom            bool    `json:"livingRoom"`
	DiningRoom            bool    `json:"diningRoom"`
	StudyRoom             bool    `json:"studyRoom"`
	PoojaRoom             bool    `json:"poojaRoom"`
	DirectionalCompliance bool    `json:"vasturequest"`
	PlotArea              float64 `json:"plotArea"`
	BuiltUpArea           float64 `json:"builtupArea"`
	Notes                 string  `json:"preferences"`
}

// PlotSurface describes the uploaded plot image. Pixel sizes only feed the
// aspect ratio.
type PlotSurface struct {
	WidthPx         float64 `json:"width"`
	HeightPx        float64 `json:"height"`
	ScalePxPerMeter float64 `json:"scale"`
}

func (p PlotSurface) AspectRatio() float64 {
	return p.WidthPx / p.HeightPx
}

// ============================================================
// Plan geometry (meters)
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Opening is a door or a window anchored on a room edge.
type Opening struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Facing Facing  `json:"orientation"`
}

type Room struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Name    string    `json:"name"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Area    float64   `json:"area"`
	Facing  Facing    `json:"orientation"`
	Doors   []Opening `json:"doors"`
	Windows []Opening `json:"windows"`
}

// Overlaps reports whether the open rectangles of r and o intersect.
// Rooms that only share an edge do not overlap.
func (r Room) Overlaps(o Room) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

type WallSegment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// BoundaryWallCount is the number of leading wall segments that outline the plot.
const BoundaryWallCount = 4

type FloorPlan struct {
	Rooms                 []Room        `json:"rooms"`
	Walls                 []WallSegment `json:"walls"`
	Dimensions            Dimensions    `json:"dimensions"`
	ScalePxPerMeter       float64       `json:"scale"`
	TotalArea             float64       `json:"totalArea"`
	DirectionalCompliance bool          `json:"vasturequest"`
}

func (p *FloorPlan) BoundaryWalls() []WallSegment {
	if len(p.Walls) < BoundaryWallCount {
		return p.Walls
	}
	return p.Walls[:BoundaryWallCount]
}

func (p *FloorPlan) InternalWalls() []WallSegment {
	if len(p.Walls) < BoundaryWallCount {
		return nil
	}
	return p.Walls[BoundaryWallCount:]
}

// ============================================================
// Stored plans
// ============================================================

type PlanRecord struct {
	ID           string          `json:"id"`
	Requirements RequirementSpec `json:"requirements"`
	Plot         PlotSurface     `json:"plot"`
	Plan         FloorPlan       `json:"plan"`
	CreatedAt    time.Time       `json:"createdAt"`
}
