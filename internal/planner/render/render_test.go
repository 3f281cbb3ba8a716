package render

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"floorplanner/internal/planner/layout"
	"floorplanner/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(t *testing.T) *models.FloorPlan {
	t.Helper()
	plan, err := layout.Generate(models.RequirementSpec{
		Bedrooms:      2,
		Bathrooms:     2,
		KitchenFacing: models.East,
		LivingRoom:    true,
		DiningRoom:    true,
		PoojaRoom:     true,
		PlotArea:      300,
		BuiltUpArea:   180,
	}, models.PlotSurface{WidthPx: 1500, HeightPx: 2000, ScalePxPerMeter: 100})
	require.NoError(t, err)
	return plan
}

func TestZoomSequence(t *testing.T) {
	v := DefaultView().ZoomIn().ZoomIn().ZoomOut()
	assert.InDelta(t, 1.2, v.Zoom, 1e-9)
}

func TestZoomClamped(t *testing.T) {
	v := DefaultView()
	for i := 0; i < 20; i++ {
		v = v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom)

	for i := 0; i < 40; i++ {
		v = v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestNormalized(t *testing.T) {
	assert.Equal(t, 1.0, ViewState{}.Normalized().Zoom)
	assert.Equal(t, MaxZoom, ViewState{Zoom: 10}.Normalized().Zoom)
	assert.Equal(t, MinZoom, ViewState{Zoom: 0.01}.Normalized().Zoom)
}

func TestDragSession(t *testing.T) {
	view := DefaultView()
	drag := BeginDrag(&view, 100, 100)

	drag.Move(110, 95)
	drag.Move(130, 80)
	assert.Equal(t, 30.0, view.PanX)
	assert.Equal(t, -20.0, view.PanY)

	drag.End()
	assert.False(t, drag.Active())
	drag.Move(500, 500)
	assert.Equal(t, 30.0, view.PanX, "moves after pointer-up are ignored")

	// pan is unclamped
	view = view.Pan(-1e6, 1e6)
	assert.Equal(t, -1e6+30, view.PanX)
}

func TestTransformCentersPlan(t *testing.T) {
	plan := &models.FloorPlan{Dimensions: models.Dimensions{Width: 10, Height: 8}}
	tr := NewTransform(plan, DefaultView(), 800, 600)

	x, y := tr.Meters(5, 4)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)

	tr = NewTransform(plan, ViewState{Zoom: 2, PanX: 10, PanY: -20}, 800, 600)
	x, y = tr.Meters(0, 0)
	assert.InDelta(t, 400+10-2*125, x, 1e-9)
	assert.InDelta(t, 300-20-2*100, y, 1e-9)

	x, y = tr.Meters(5, 4)
	assert.InDelta(t, 410, x, 1e-9)
	assert.InDelta(t, 280, y, 1e-9)
}

func TestDrawOrder(t *testing.T) {
	plan := samplePlan(t)
	rec := NewRecorder(800, 600)
	require.NoError(t, NewProjector(rec).Draw(plan, DefaultView()))

	ops := rec.Ops
	require.Equal(t, OpClear, ops[0].Kind)
	ops = ops[1:]

	// walls first: 4 thick then the rest thin
	for i := range plan.Walls {
		require.Equal(t, OpStrokeLine, ops[i].Kind, "wall %d", i)
		if i < models.BoundaryWallCount {
			assert.Equal(t, colorBoundary, ops[i].Color)
			assert.Equal(t, 6.0, ops[i].Width)
		} else {
			assert.Equal(t, colorInternal, ops[i].Color)
			assert.Equal(t, 2.0, ops[i].Width)
		}
	}
	ops = ops[len(plan.Walls):]

	for _, room := range plan.Rooms {
		want := []OpKind{OpFillRect, OpStrokeRect, OpText, OpText, OpText}
		for i, k := range want {
			assert.Equal(t, k, ops[i].Kind, "room %s op %d", room.ID, i)
		}
		assert.Equal(t, room.Name, ops[2].Text)
		assert.True(t, strings.HasSuffix(ops[3].Text, " sq.m"))
		assert.Contains(t, ops[4].Text, "m × ")
		ops = ops[len(want):]

		for range room.Doors {
			assert.Equal(t, colorDoor, ops[0].Color)
			ops = ops[1:]
		}
		for range room.Windows {
			assert.Equal(t, colorWindow, ops[0].Color)
			ops = ops[1:]
		}
	}

	// dimension annotations close the frame
	require.Len(t, ops, 8)
	assert.Equal(t, OpText, ops[3].Kind)
	assert.Equal(t, OpText, ops[4].Kind)
}

func TestOpeningStrokeAxis(t *testing.T) {
	plan := &models.FloorPlan{
		Dimensions: models.Dimensions{Width: 4, Height: 4},
		Rooms: []models.Room{{
			X: 0, Y: 0, Width: 4, Height: 4,
			Doors:   []models.Opening{{X: 2, Y: 4, Width: 1, Facing: models.South}},
			Windows: []models.Opening{{X: 0, Y: 1, Width: 2, Facing: models.West}, {X: 1, Y: 0, Width: 1, Facing: models.Northeast}},
		}},
	}
	rec := NewRecorder(800, 600)
	require.NoError(t, NewProjector(rec).Draw(plan, DefaultView()))

	var strokes []Op
	for _, op := range rec.Ops {
		if op.Color == colorDoor || op.Color == colorWindow {
			strokes = append(strokes, op)
		}
	}
	require.Len(t, strokes, 3)

	door := strokes[0].Coords
	assert.Equal(t, door[1], door[3])
	assert.InDelta(t, 25, door[2]-door[0], 1e-9)

	west := strokes[1].Coords
	assert.Equal(t, west[0], west[2])
	assert.InDelta(t, 50, west[3]-west[1], 1e-9)

	diagonal := strokes[2].Coords
	assert.Equal(t, diagonal[1], diagonal[3], "diagonals use their north/south component")
}

func TestStrokeHorizontal(t *testing.T) {
	assert.True(t, StrokeHorizontal(models.North))
	assert.True(t, StrokeHorizontal(models.Southwest))
	assert.False(t, StrokeHorizontal(models.East))
	assert.False(t, StrokeHorizontal(models.Center))
}

func TestDrawRejectsMissingSurface(t *testing.T) {
	plan := samplePlan(t)

	err := NewProjector(nil).Draw(plan, DefaultView())
	assert.True(t, errors.Is(err, ErrRenderTargetUnavailable))

	err = NewProjector(NewRecorder(0, 600)).Draw(plan, DefaultView())
	assert.True(t, errors.Is(err, ErrRenderTargetUnavailable))

	_, err = RenderSVG(plan, DefaultView(), 800, 0)
	assert.True(t, errors.Is(err, ErrRenderTargetUnavailable))

	var buf bytes.Buffer
	err = RenderPNG(&buf, plan, DefaultView(), 0, 0)
	assert.True(t, errors.Is(err, ErrRenderTargetUnavailable))
	assert.Zero(t, buf.Len())
}

func TestDrawRejectsNilPlan(t *testing.T) {
	err := NewProjector(NewRecorder(800, 600)).Draw(nil, DefaultView())
	assert.Error(t, err)
}

func TestRenderSVG(t *testing.T) {
	plan := samplePlan(t)
	svg, err := RenderSVG(plan, DefaultView(), DefaultCanvasWidth, DefaultCanvasHeight)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, svg, `width="800" height="600"`)
	assert.Contains(t, svg, ">Master Bedroom</text>")
	assert.Contains(t, svg, ">14 sq.m</text>")
	assert.Contains(t, svg, `transform="rotate(-90 `)
	lines := len(plan.Walls) + 6
	for _, r := range plan.Rooms {
		lines += len(r.Doors) + len(r.Windows)
	}
	assert.Equal(t, lines, strings.Count(svg, "<line "))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, samplePlan(t), DefaultView().ZoomIn(), 400, 300))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRasterTextFollowsSize(t *testing.T) {
	s := NewRasterSurface(100, 100)

	small := s.face(8)
	large := s.face(24)
	require.NotNil(t, small)
	require.NotNil(t, large)
	assert.Greater(t, int(large.Metrics().Height), int(small.Metrics().Height))
	assert.Same(t, small, s.face(8.1), "sizes share a face within a quarter pixel")
	assert.Nil(t, s.face(0))
}
