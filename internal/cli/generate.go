package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/layout"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/processing"
	"floorplanner/internal/planner/render"
	"floorplanner/internal/planner/service"

	"github.com/spf13/cobra"
)

type generateOpts struct {
	format   string
	progress time.Duration
}

func newGenerateCmd(g *globalOpts) *cobra.Command {
	opts := generateOpts{format: string(export.FormatJSON)}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a plan and export it as json, svg or png",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			req := g.request
			plan, err := generate(cmd.Context(), req, opts.progress)
			if err != nil {
				return err
			}

			now := time.Now()
			var buf bytes.Buffer
			switch format {
			case export.FormatJSON:
				err = export.Encode(&buf, export.NewDocument(plan, req.Requirements(), now))
			case export.FormatSVG:
				var svg string
				svg, err = render.RenderSVG(plan, render.DefaultView(), req.Output.CanvasWidth, req.Output.CanvasHeight)
				buf.WriteString(svg)
			case export.FormatPNG:
				err = render.RenderPNG(&buf, plan, render.DefaultView(), req.Output.CanvasWidth, req.Output.CanvasHeight)
			}
			if err != nil {
				return err
			}

			storage := service.NewFileStorage(req.Output.Dir)
			return save(cmd, storage, storage.ExportPath(now, format), buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "export format: json, svg or png")
	cmd.Flags().DurationVar(&opts.progress, "progress", 0, "show processing steps for this long before writing")

	return cmd
}

// generate builds the plan and, when progress is set, logs the processing
// steps while it waits.
func generate(ctx context.Context, req *Request, progress time.Duration) (*models.FloorPlan, error) {
	logger := loggerFromContext(ctx)

	plan, err := layout.Generate(req.Requirements(), req.Surface())
	if err != nil {
		return nil, err
	}
	logger.Debug("plan generated", "rooms", len(plan.Rooms), "walls", len(plan.Walls),
		"width", plan.Dimensions.Width, "height", plan.Dimensions.Height)

	if progress > 0 {
		ticker := processing.NewTicker(processing.StepsFor(req.Rooms.DirectionalCompliance), processing.DefaultInterval)
		logger.Info(ticker.Current().Message)
		err := ticker.Run(ctx, progress, func(t processing.Tick) {
			logger.Info(t.Message, "step", t.Step+1)
		})
		if err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func save(cmd *cobra.Command, storage *service.FileStorage, target string, data []byte) error {
	if err := storage.SaveFile(target, data); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("wrote", "file", target, "bytes", len(data))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), target)
	return err
}
