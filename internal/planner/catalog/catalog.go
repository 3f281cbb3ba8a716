// Package catalog holds the static rule tables used by the layout engine:
// room archetype sizes, facing tables and door/window anchor rules.
// Nothing here is computed; every table is a fixed keyed mapping.
package catalog

import "floorplanner/internal/planner/models"

// ============================================================
// Layout constants (meters)
// ============================================================

const (
	WallThickness = 0.2
	Margin        = 0.2
	CorridorWidth = 1.0
)

// ============================================================
// Room archetypes
// ============================================================

type Archetype struct {
	Width   float64
	Height  float64
	MinArea float64
}

func (a Archetype) Area() float64 {
	return a.Width * a.Height
}

var archetypes = map[models.Kind]Archetype{
	models.KindMasterBedroom: {Width: 4.0, Height: 3.5, MinArea: 14.0},
	models.KindBedroom:       {Width: 3.5, Height: 3.0, MinArea: 10.5},
	models.KindLivingRoom:    {Width: 5.0, Height: 4.0, MinArea: 20.0},
	models.KindKitchen:       {Width: 3.0, Height: 2.5, MinArea: 7.5},
	models.KindBathroom:      {Width: 2.0, Height: 2.0, MinArea: 4.0},
	models.KindDiningRoom:    {Width: 3.5, Height: 3.0, MinArea: 10.5},
	models.KindStudyRoom:     {Width: 3.0, Height: 2.5, MinArea: 7.5},
	models.KindPoojaRoom:     {Width: 2.0, Height: 1.5, MinArea: 3.0},
}

// Lookup returns the standard size for kind.
func Lookup(kind models.Kind) (Archetype, bool) {
	a, ok := archetypes[kind]
	return a, ok
}

// Kinds lists every catalogued kind in zoning order.
func Kinds() []models.Kind {
	return []models.Kind{
		models.KindMasterBedroom,
		models.KindBedroom,
		models.KindLivingRoom,
		models.KindKitchen,
		models.KindDiningRoom,
		models.KindBathroom,
		models.KindStudyRoom,
		models.KindPoojaRoom,
	}
}

// ============================================================
// Facing tables
// ============================================================

// requested marks a kind whose facing comes from the requirement itself.
const requested models.Facing = "requested"

var defaultFacing = map[models.Kind]models.Facing{
	models.KindMasterBedroom: models.East,
	models.KindBedroom:       models.East,
	models.KindLivingRoom:    models.East,
	models.KindKitchen:       requested,
	models.KindDiningRoom:    models.Center,
	models.KindBathroom:      models.North,
	models.KindStudyRoom:     models.East,
	models.KindPoojaRoom:     models.East,
}

var compliantFacing = map[models.Kind]models.Facing{
	models.KindMasterBedroom: models.Southwest,
	models.KindBedroom:       models.South,
	models.KindLivingRoom:    models.Northeast,
	models.KindKitchen:       requested,
	models.KindDiningRoom:    models.Center,
	models.KindBathroom:      models.Northwest,
	models.KindStudyRoom:     models.Northeast,
	models.KindPoojaRoom:     models.Northeast,
}

// ResolveFacing picks a room's facing from the compliant or default table.
// kitchenFacing is used for kinds that honour the requested direction.
func ResolveFacing(kind models.Kind, compliant bool, kitchenFacing models.Facing) models.Facing {
	table := defaultFacing
	if compliant {
		table = compliantFacing
	}

	f, ok := table[kind]
	if !ok {
		return models.Center
	}
	if f == requested {
		return kitchenFacing
	}
	return f
}

// PinsToEastEdge reports whether a kind is moved to the plot's eastern edge
// under directional compliance for the given requested facing.
func PinsToEastEdge(kind models.Kind, compliant bool, kitchenFacing models.Facing) bool {
	return compliant && kind == models.KindKitchen && kitchenFacing == models.East
}
