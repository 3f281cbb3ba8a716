package layout

import (
	"floorplanner/internal/planner/catalog"
	"floorplanner/internal/planner/models"
)

// ============================================================
// Opening Placer
// ============================================================

// PlaceOpenings fills in the room's facing, door and windows from the rule
// tables. The room rectangle must already be final.
func PlaceOpenings(room *models.Room, req models.RequirementSpec) {
	room.Facing = catalog.ResolveFacing(room.Kind, req.DirectionalCompliance, req.KitchenFacing)

	rules, ok := catalog.Openings(room.Kind)
	if !ok {
		room.Doors = []models.Opening{}
		room.Windows = []models.Opening{}
		return
	}

	room.Doors = []models.Opening{opening(*room, rules.Door)}

	room.Windows = make([]models.Opening, 0, len(rules.Windows))
	for _, rule := range rules.Windows {
		room.Windows = append(room.Windows, opening(*room, rule))
	}
}

func opening(room models.Room, rule catalog.OpeningRule) models.Opening {
	p := anchorPoint(room, rule.Anchor)
	return models.Opening{
		X:      p.X,
		Y:      p.Y,
		Width:  rule.Width,
		Facing: rule.Edge,
	}
}

// anchorPoint resolves an anchor to a point on the room perimeter.
// North/south edges run along X, east/west edges along Y.
func anchorPoint(room models.Room, a catalog.Anchor) models.Point {
	switch a.Edge {
	case models.North, models.South:
		along := a.Along
		if a.Mid {
			along = room.Width / 2
		}
		y := room.Y
		if a.Edge == models.South {
			y = room.Y + room.Height
		}
		return models.Point{X: room.X + along, Y: y}
	default:
		along := a.Along
		if a.Mid {
			along = room.Height / 2
		}
		x := room.X
		if a.Edge == models.East {
			x = room.X + room.Width
		}
		return models.Point{X: x, Y: room.Y + along}
	}
}
