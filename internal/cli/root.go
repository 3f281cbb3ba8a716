// Package cli implements the floorplan command-line interface.
//
// Every command reads a TOML request (see Defaults for the shape), generates
// the plan and writes one file into the output directory:
//   - generate: the plan as a JSON, SVG or PNG export
//   - render: an SVG or PNG under the request's zoom and pan
//   - scene: a react-planner scene
package cli

import (
	"context"
	"io"
	"os"

	"floorplanner/internal/common/logging"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(context.Background())
}

// NewRootCommand builds the command tree. Results go to out, logs to logw.
func NewRootCommand(out, logw io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
		outDir     string
	)

	opts := &globalOpts{}

	root := &cobra.Command{
		Use:          "floorplan",
		Short:        "Generate residential floor plans from room requirements",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), logging.New(logw, level))
			cmd.SetContext(ctx)

			req, err := Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				req.Output.Dir = outDir
			}
			opts.request = req
			return nil
		},
	}

	root.SetOut(out)
	root.SetErr(logw)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "request.toml", "path to the TOML request file")
	root.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory (overrides [output].dir)")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newSceneCmd(opts))

	return root
}

type globalOpts struct {
	request *Request
}
