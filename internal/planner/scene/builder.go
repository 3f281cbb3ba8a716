// Package scene converts a floor plan into a react-planner scene so it can be
// opened in the planner editor. Coordinates are converted to centimeters.
package scene

import (
	"fmt"
	"math"

	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
)

// ============================================================
// Scene Builder
// ============================================================

const (
	centimeters = 100.0
	tolerance   = 1.0 // cm; closer points share a vertex

	boundaryThickness = 20.0
	internalThickness = 10.0
)

type Builder struct {
	vertices map[string]models.Vertex
	order    []string
	lines    map[string]models.Line
	holes    map[string]models.Hole
	areas    map[string]models.Area
	vertexID int
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) reset() {
	b.vertices = make(map[string]models.Vertex)
	b.order = b.order[:0]
	b.lines = make(map[string]models.Line)
	b.holes = make(map[string]models.Hole)
	b.areas = make(map[string]models.Area)
	b.vertexID = 0
}

// Build converts plan into a single-layer scene.
func (b *Builder) Build(plan *models.FloorPlan) (*models.Scene, error) {
	if plan == nil {
		return nil, fmt.Errorf("scene: floor plan is nil")
	}
	b.reset()

	lineIDs := make([]string, len(plan.Walls))
	for i, wall := range plan.Walls {
		thickness := internalThickness
		if i < models.BoundaryWallCount {
			thickness = boundaryThickness
		}
		lineIDs[i] = b.addWall(fmt.Sprintf("wall-%d", i+1), wall, thickness)
	}

	for i, room := range plan.Rooms {
		// each room owns the four wall segments after the boundary, in order
		start := models.BoundaryWallCount * (i + 1)
		var own []string
		if start+models.BoundaryWallCount <= len(lineIDs) {
			own = lineIDs[start : start+models.BoundaryWallCount]
		}

		for j, door := range room.Doors {
			b.addHole(fmt.Sprintf("%s-door-%d", room.ID, j+1), "door", door, own)
		}
		for j, window := range room.Windows {
			b.addHole(fmt.Sprintf("%s-window-%d", room.ID, j+1), "window", window, own)
		}
		b.addArea(room)
	}

	layer := models.Layer{
		ID:       "layer-1",
		Altitude: 0,
		Order:    0,
		Opacity:  1,
		Name:     "default",
		Visible:  true,
		Vertices: b.vertices,
		Lines:    b.lines,
		Holes:    b.holes,
		Areas:    b.areas,
		Items:    map[string]any{},
		Selected: models.ElementsSet{Vertices: []string{}, Lines: []string{}, Holes: []string{}, Areas: []string{}, Items: []string{}},
	}

	return &models.Scene{
		Unit:          "cm",
		Layers:        map[string]models.Layer{"layer-1": layer},
		SelectedLayer: "layer-1",
		Grids:         defaultGrids(),
		Groups:        map[string]any{},
		Width:         math.Ceil(plan.Dimensions.Width * centimeters),
		Height:        math.Ceil(plan.Dimensions.Height * centimeters),
		Meta:          map[string]any{"scale": plan.ScalePxPerMeter, "totalArea": plan.TotalArea},
		Guides:        defaultGuides(),
	}, nil
}

func (b *Builder) addWall(id string, wall models.WallSegment, thickness float64) string {
	v1 := b.findOrCreateVertex(toCM(wall.X1, wall.Y1))
	v2 := b.findOrCreateVertex(toCM(wall.X2, wall.Y2))

	b.lines[id] = models.Line{
		ID:         id,
		Name:       id,
		Type:       "wall",
		Prototype:  "lines",
		Vertices:   []string{v1, v2},
		Holes:      []string{},
		Properties: defaultWallProperties(thickness),
	}
	b.attachLineToVertex(v1, id)
	b.attachLineToVertex(v2, id)
	return id
}

func (b *Builder) addHole(id, holeType string, o models.Opening, candidates []string) {
	center := openingCenter(o)
	lineID, offset := b.findNearestLine(center, candidates)
	if lineID == "" {
		return
	}

	b.holes[id] = models.Hole{
		ID:         id,
		Name:       id,
		Type:       holeType,
		Prototype:  "holes",
		Offset:     offset,
		Line:       lineID,
		Properties: defaultHoleProperties(holeType, o.Width*centimeters),
	}

	line := b.lines[lineID]
	line.Holes = append(line.Holes, id)
	b.lines[lineID] = line
}

func (b *Builder) addArea(room models.Room) {
	corners := []models.Point{
		toCM(room.X, room.Y),
		toCM(room.X+room.Width, room.Y),
		toCM(room.X+room.Width, room.Y+room.Height),
		toCM(room.X, room.Y+room.Height),
	}

	ids := make([]string, 0, len(corners))
	for _, p := range corners {
		id := b.findOrCreateVertex(p)
		v := b.vertices[id]
		v.Areas = appendUnique(v.Areas, room.ID)
		b.vertices[id] = v
		ids = append(ids, id)
	}

	b.areas[room.ID] = models.Area{
		ID:         room.ID,
		Name:       room.Name,
		Type:       "area",
		Prototype:  "areas",
		Vertices:   ids,
		Holes:      []string{},
		Properties: defaultAreaProperties(),
	}
}

// ============================================================
// Geometry helpers
// ============================================================

func toCM(x, y float64) models.Point {
	return models.Point{X: x * centimeters, Y: y * centimeters}
}

// openingCenter is the midpoint of the opening's stroke, in centimeters.
func openingCenter(o models.Opening) models.Point {
	p := toCM(o.X, o.Y)
	half := o.Width * centimeters / 2
	if render.StrokeHorizontal(o.Facing) {
		p.X += half
	} else {
		p.Y += half
	}
	return p
}

func (b *Builder) findOrCreateVertex(p models.Point) string {
	for _, id := range b.order {
		v := b.vertices[id]
		if distance(p, models.Point{X: v.X, Y: v.Y}) < tolerance {
			return id
		}
	}

	b.vertexID++
	id := fmt.Sprintf("v%d", b.vertexID)
	b.vertices[id] = models.Vertex{
		ID:        id,
		Name:      "Vertex",
		Type:      "vertex",
		Prototype: "vertices",
		X:         p.X,
		Y:         p.Y,
		Lines:     []string{},
		Areas:     []string{},
	}
	b.order = append(b.order, id)
	return id
}

func (b *Builder) attachLineToVertex(vertexID, lineID string) {
	v := b.vertices[vertexID]
	v.Lines = appendUnique(v.Lines, lineID)
	b.vertices[vertexID] = v
}

// findNearestLine returns the closest candidate line and the hole offset
// (0..1 from the line's first vertex).
func (b *Builder) findNearestLine(p models.Point, candidates []string) (string, float64) {
	var nearestID string
	var nearestOffset float64
	minDist := math.MaxFloat64

	for _, lineID := range candidates {
		line, ok := b.lines[lineID]
		if !ok || len(line.Vertices) < 2 {
			continue
		}
		v1 := b.vertices[line.Vertices[0]]
		v2 := b.vertices[line.Vertices[1]]

		dist, offset := pointToLineDistance(p, v1, v2)
		if dist < minDist {
			minDist = dist
			nearestID = lineID
			nearestOffset = offset
		}
	}

	return nearestID, nearestOffset
}

func pointToLineDistance(p models.Point, v1, v2 models.Vertex) (float64, float64) {
	dx := v2.X - v1.X
	dy := v2.Y - v1.Y
	lineLen := math.Sqrt(dx*dx + dy*dy)

	if lineLen == 0 {
		return distance(p, models.Point{X: v1.X, Y: v1.Y}), 0
	}

	t := ((p.X-v1.X)*dx + (p.Y-v1.Y)*dy) / (lineLen * lineLen)
	t = math.Max(0, math.Min(1, t))

	proj := models.Point{X: v1.X + t*dx, Y: v1.Y + t*dy}
	return distance(p, proj), t
}

func distance(p1, p2 models.Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		found := false
		for _, d := range dst {
			if d == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

// ============================================================
// Defaults
// ============================================================

func defaultWallProperties(thickness float64) map[string]any {
	return map[string]any{
		"height":    map[string]any{"length": 300.0},
		"thickness": map[string]any{"length": thickness},
		"textureA":  "bricks",
		"textureB":  "bricks",
	}
}

func defaultHoleProperties(holeType string, width float64) map[string]any {
	switch holeType {
	case "door":
		return map[string]any{
			"width":           map[string]any{"length": width},
			"height":          map[string]any{"length": 215.0},
			"altitude":        map[string]any{"length": 0.0},
			"thickness":       map[string]any{"length": 30.0},
			"flip_orizzontal": false,
		}
	case "window":
		return map[string]any{
			"width":     map[string]any{"length": width},
			"height":    map[string]any{"length": 100.0},
			"altitude":  map[string]any{"length": 90.0},
			"thickness": map[string]any{"length": 10.0},
		}
	default:
		return map[string]any{}
	}
}

func defaultAreaProperties() map[string]any {
	return map[string]any{
		"patternColor": "#F5F5F5",
		"thickness":    map[string]any{"length": 0.0},
	}
}

func defaultGrids() map[string]models.Grid {
	return map[string]models.Grid{
		"h1": {
			ID:   "h1",
			Type: "horizontal-streak",
			Properties: map[string]any{
				"step":   20,
				"colors": []string{"#808080", "#ddd", "#ddd", "#ddd", "#ddd"},
			},
		},
		"v1": {
			ID:   "v1",
			Type: "vertical-streak",
			Properties: map[string]any{
				"step":   20,
				"colors": []string{"#808080", "#ddd", "#ddd", "#ddd", "#ddd"},
			},
		},
	}
}

func defaultGuides() models.Guides {
	return models.Guides{
		Horizontal: map[string]any{},
		Vertical:   map[string]any{},
		Circular:   map[string]any{},
	}
}
