package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"floorplanner/internal/planner/scene"
	"floorplanner/internal/planner/service"

	"github.com/spf13/cobra"
)

func newSceneCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "scene",
		Short: "Export the plan as a react-planner scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := g.request
			plan, err := generate(cmd.Context(), req, 0)
			if err != nil {
				return err
			}

			s, err := scene.NewBuilder().Build(plan)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("encode scene: %w", err)
			}

			storage := service.NewFileStorage(req.Output.Dir)
			return save(cmd, storage, storage.ScenePath(time.Now()), data)
		},
	}
}
