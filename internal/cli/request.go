package cli

import (
	"os"

	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"

	"github.com/BurntSushi/toml"
)

// Request is a TOML request file for the CLI.
type Request struct {
	Rooms  RoomsConfig  `toml:"rooms"`
	Plot   PlotConfig   `toml:"plot"`
	View   ViewConfig   `toml:"view"`
	Output OutputConfig `toml:"output"`
}

type RoomsConfig struct {
	Bedrooms              int    `toml:"bedrooms"`
	Bathrooms             int    `toml:"bathrooms"`
	KitchenFacing         string `toml:"kitchen_facing"`
	LivingRoom            bool   `toml:"living_room"`
	DiningRoom            bool   `toml:"dining_room"`
	StudyRoom             bool   `toml:"study_room"`
	PoojaRoom             bool   `toml:"pooja_room"`
	DirectionalCompliance bool   `toml:"directional_compliance"`
	Notes                 string `toml:"notes"`
}

type PlotConfig struct {
	Area        float64 `toml:"area"`
	BuiltUpArea float64 `toml:"built_up_area"`
	WidthPx     float64 `toml:"width_px"`
	HeightPx    float64 `toml:"height_px"`
	Scale       float64 `toml:"scale"`
}

type ViewConfig struct {
	Zoom float64 `toml:"zoom"`
	PanX float64 `toml:"pan_x"`
	PanY float64 `toml:"pan_y"`
}

type OutputConfig struct {
	Dir          string `toml:"dir"`
	CanvasWidth  int    `toml:"canvas_width"`
	CanvasHeight int    `toml:"canvas_height"`
}

// Defaults returns a two-bedroom request on a square plot.
func Defaults() *Request {
	return &Request{
		Rooms: RoomsConfig{
			Bedrooms:      2,
			Bathrooms:     2,
			KitchenFacing: string(models.East),
			LivingRoom:    true,
			DiningRoom:    true,
		},
		Plot: PlotConfig{
			Area:        200,
			BuiltUpArea: 135,
			WidthPx:     1000,
			HeightPx:    1000,
			Scale:       100,
		},
		View: ViewConfig{Zoom: 1},
		Output: OutputConfig{
			Dir:          "exports",
			CanvasWidth:  render.DefaultCanvasWidth,
			CanvasHeight: render.DefaultCanvasHeight,
		},
	}
}

// Load reads a TOML request file over the defaults. A missing file yields the
// defaults without error.
func Load(path string) (*Request, error) {
	req := Defaults()

	if path == "" {
		return req, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return req, nil
	}

	if _, err := toml.DecodeFile(path, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Request) Requirements() models.RequirementSpec {
	return models.RequirementSpec{
		Bedrooms:              r.Rooms.Bedrooms,
		Bathrooms:             r.Rooms.Bathrooms,
		KitchenFacing:         models.Facing(r.Rooms.KitchenFacing),
		LivingRoom:            r.Rooms.LivingRoom,
		DiningRoom:            r.Rooms.DiningRoom,
		StudyRoom:             r.Rooms.StudyRoom,
		PoojaRoom:             r.Rooms.PoojaRoom,
		DirectionalCompliance: r.Rooms.DirectionalCompliance,
		PlotArea:              r.Plot.Area,
		BuiltUpArea:           r.Plot.BuiltUpArea,
		Notes:                 r.Rooms.Notes,
	}
}

func (r *Request) Surface() models.PlotSurface {
	return models.PlotSurface{
		WidthPx:         r.Plot.WidthPx,
		HeightPx:        r.Plot.HeightPx,
		ScalePxPerMeter: r.Plot.Scale,
	}
}

func (r *Request) ViewState() render.ViewState {
	return render.ViewState{Zoom: r.View.Zoom, PanX: r.View.PanX, PanY: r.View.PanY}.Normalized()
}
