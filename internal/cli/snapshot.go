package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/pvscene/pkg/pipeline"
)

// snapshotCommand creates the snapshot command: build with a fixed PNG
// output format.
func (c *CLI) snapshotCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Build the scene and write a PNG snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = []string{pipeline.FormatPNG}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runBuild(ctx, &opts)
		},
	}

	addSceneFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "load a saved project")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// exportCommand creates the export command: build with mesh output
// formats only.
func (c *CLI) exportCommand() *cobra.Command {
	opts := buildOpts{}
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the scene and write STL or GLB mesh files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr == "" {
				formatsStr = pipeline.FormatSTL
			}
			opts.formats = strings.Split(formatsStr, ",")
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runBuild(ctx, &opts)
		},
	}

	addSceneFlags(cmd, &opts)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "mesh format(s): stl (default), glb (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "load a saved project")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// addSceneFlags registers the scene configuration flags shared by the
// build, snapshot, and export commands.
func addSceneFlags(cmd *cobra.Command, opts *buildOpts) {
	cmd.Flags().Float64Var(&opts.length, "length", 0, "building length in meters (east-west)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "building width in meters (north-south)")
	cmd.Flags().Float64Var(&opts.wallHeight, "wall-height", 0, "eave height in meters")
	cmd.Flags().StringVar(&opts.roofType, "roof", "", "roof shape: flat (default), gable, hip, pyramid, pent")
	cmd.Flags().Float64Var(&opts.pitch, "pitch", 0, "roof pitch in degrees")
	cmd.Flags().StringVar(&opts.covering, "covering", "", "roof covering description (tints the roof)")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "facing direction: south (default), east, west, north")
	cmd.Flags().IntVarP(&opts.quantity, "quantity", "n", 0, "number of PV modules to place")
	cmd.Flags().StringVar(&opts.mount, "mount", "", "flat-roof mount: south (default), east-west")
	cmd.Flags().IntSliceVar(&opts.removed, "remove", nil, "module grid indices to leave empty (manual layout)")
	cmd.Flags().BoolVar(&opts.outbuilding, "outbuilding", false, "overflow onto an outbuilding roof")
	cmd.Flags().BoolVar(&opts.facade, "facade", false, "overflow onto the south facade")
}
