package layout

import "floorplanner/internal/planner/models"

// ============================================================
// Wall Synthesizer
// ============================================================

// SynthesizeWalls emits the plot outline followed by every room outline in
// placement order. Shared room edges are emitted once per room.
func SynthesizeWalls(width, height float64, rooms []models.Room) []models.WallSegment {
	walls := make([]models.WallSegment, 0, models.BoundaryWallCount*(len(rooms)+1))
	walls = append(walls, rectSegments(0, 0, width, height)...)

	for _, room := range rooms {
		walls = append(walls, rectSegments(room.X, room.Y, room.Width, room.Height)...)
	}

	return walls
}

// rectSegments winds clockwise: top, right, bottom, left.
func rectSegments(x, y, w, h float64) []models.WallSegment {
	return []models.WallSegment{
		{X1: x, Y1: y, X2: x + w, Y2: y},
		{X1: x + w, Y1: y, X2: x + w, Y2: y + h},
		{X1: x + w, Y1: y + h, X2: x, Y2: y + h},
		{X1: x, Y1: y + h, X2: x, Y2: y},
	}
}
