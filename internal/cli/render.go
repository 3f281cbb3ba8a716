package cli

import (
	"bytes"
	"fmt"
	"time"

	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/render"
	"floorplanner/internal/planner/service"

	"github.com/spf13/cobra"
)

type renderOpts struct {
	format string
	zoom   float64
	panX   float64
	panY   float64
}

func newRenderCmd(g *globalOpts) *cobra.Command {
	opts := renderOpts{format: string(export.FormatSVG)}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the plan under a zoom and pan to svg or png",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := g.request
			view := req.ViewState()
			if cmd.Flags().Changed("zoom") {
				view.Zoom = opts.zoom
			}
			if cmd.Flags().Changed("pan-x") {
				view.PanX = opts.panX
			}
			if cmd.Flags().Changed("pan-y") {
				view.PanY = opts.panY
			}
			view = view.Normalized()

			plan, err := generate(cmd.Context(), req, 0)
			if err != nil {
				return err
			}

			now := time.Now()
			var (
				buf    bytes.Buffer
				format export.Format
			)
			switch opts.format {
			case "svg":
				format = export.FormatSVG
				var svg string
				svg, err = render.RenderSVG(plan, view, req.Output.CanvasWidth, req.Output.CanvasHeight)
				buf.WriteString(svg)
			case "png":
				format = export.FormatPNG
				err = render.RenderPNG(&buf, plan, view, req.Output.CanvasWidth, req.Output.CanvasHeight)
			default:
				return fmt.Errorf("%w: render supports svg and png, got %q", export.ErrUnsupportedFormat, opts.format)
			}
			if err != nil {
				return err
			}

			storage := service.NewFileStorage(req.Output.Dir)
			return save(cmd, storage, storage.ExportPath(now, format), buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "image format: svg or png")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 1, "zoom factor, clamped to [0.3, 3]")
	cmd.Flags().Float64Var(&opts.panX, "pan-x", 0, "horizontal pan in pixels")
	cmd.Flags().Float64Var(&opts.panY, "pan-y", 0, "vertical pan in pixels")

	return cmd
}
