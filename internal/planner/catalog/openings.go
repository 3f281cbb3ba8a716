package catalog

import "floorplanner/internal/planner/models"

// Anchor names a point on a room edge. Along is the distance from the edge's
// start (the room origin side); when Mid is set the edge midpoint is used.
type Anchor struct {
	Edge  models.Facing
	Along float64
	Mid   bool
}

type OpeningRule struct {
	Anchor
	Width float64
}

type OpeningRules struct {
	Door    OpeningRule
	Windows []OpeningRule
}

func mid(edge models.Facing, width float64) OpeningRule {
	return OpeningRule{Anchor: Anchor{Edge: edge, Mid: true}, Width: width}
}

func at(edge models.Facing, along, width float64) OpeningRule {
	return OpeningRule{Anchor: Anchor{Edge: edge, Along: along}, Width: width}
}

var openingRules = map[models.Kind]OpeningRules{
	models.KindMasterBedroom: {
		Door:    mid(models.East, 0.9),
		Windows: []OpeningRule{at(models.West, 1, 1.2)},
	},
	models.KindBedroom: {
		Door:    mid(models.East, 0.9),
		Windows: []OpeningRule{at(models.West, 1, 1.2)},
	},
	models.KindLivingRoom: {
		Door: mid(models.South, 1.2),
		Windows: []OpeningRule{
			at(models.West, 1, 1.8),
			at(models.North, 2, 1.5),
		},
	},
	models.KindKitchen: {
		Door:    mid(models.West, 0.8),
		Windows: []OpeningRule{mid(models.North, 1.0)},
	},
	models.KindDiningRoom: {
		Door:    mid(models.West, 0.9),
		Windows: []OpeningRule{at(models.East, 1, 1.2)},
	},
	models.KindBathroom: {
		Door:    mid(models.North, 0.7),
		Windows: []OpeningRule{mid(models.West, 0.6)},
	},
	models.KindStudyRoom: {
		Door:    mid(models.West, 0.8),
		Windows: []OpeningRule{at(models.East, 1, 1.0)},
	},
	// no windows in the prayer room
	models.KindPoojaRoom: {
		Door: mid(models.North, 0.6),
	},
}

// Openings returns the door/window rules for kind.
func Openings(kind models.Kind) (OpeningRules, bool) {
	r, ok := openingRules[kind]
	return r, ok
}
