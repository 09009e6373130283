package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/pvscene/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	// Building
	length     float64
	width      float64
	wallHeight float64

	// Roof
	roofType string
	pitch    float64
	covering string

	// Placement
	orientation string
	quantity    int
	mount       string
	removed     []int
	outbuilding bool
	facade      bool

	// Output
	output  string
	formats []string
	project string
	noCache bool
	refresh bool
}

// buildCommand creates the build command: assemble the scene and write
// the requested artifacts.
func (c *CLI) buildCommand() *cobra.Command {
	var formatsStr string
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the scene and write snapshot and mesh artifacts",
		Long: `Build assembles the 3D scene from building dimensions, roof shape, and
the requested module count, then writes the rendered artifacts.

Formats: png (raster snapshot), stl (triangle mesh), glb (binary glTF).

Examples:
  pvscene build --quantity 30 --roof gable --pitch 35 -f png,glb
  pvscene build --project south-house -f stl -o exports/house`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runBuild(ctx, &opts)
		},
	}

	addSceneFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (extension added per format)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), stl, glb (comma-separated)")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "load a saved project as the base configuration")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when artifacts are cached")

	return cmd
}

// runBuild executes the pipeline and writes each artifact to disk.
func (c *CLI) runBuild(ctx context.Context, opts *buildOpts) error {
	logger := loggerFromContext(ctx)

	pipeOpts, err := c.pipelineOptions(ctx, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "Building scene...")
	spin.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d of %d modules", result.Summary.Placed(), result.Summary.Requested))

	printSummary(result.Summary)
	printStats(result.Stats.Panels, result.Stats.Triangles, result.CacheInfo.RenderHit)

	base := outputBase(opts.output, opts.project)
	for _, format := range pipeOpts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			printWarning("%s artifact unavailable", format)
			continue
		}
		path := base + "." + format
		if err := writeArtifact(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	if opts.project == "" {
		printNextStep("save this layout", "pvscene project save <name>")
	}
	return nil
}

// pipelineOptions merges flag values over an optional saved project.
func (c *CLI) pipelineOptions(ctx context.Context, opts *buildOpts) (pipeline.Options, error) {
	pipeOpts := pipeline.Options{
		Length:         opts.length,
		Width:          opts.width,
		WallHeight:     opts.wallHeight,
		RoofType:       opts.roofType,
		PitchDeg:       opts.pitch,
		Covering:       opts.covering,
		Orientation:    opts.orientation,
		Quantity:       opts.quantity,
		Mount:          opts.mount,
		Removed:        opts.removed,
		UseOutbuilding: opts.outbuilding,
		UseFacade:      opts.facade,
		Formats:        opts.formats,
		Refresh:        opts.refresh,
		Logger:         c.Logger,
	}
	if len(opts.removed) > 0 {
		pipeOpts.LayoutMode = "manual"
	}

	if opts.project != "" {
		st, err := newProjectStore()
		if err != nil {
			return pipeOpts, err
		}
		p, err := st.Get(ctx, opts.project)
		if err != nil {
			return pipeOpts, err
		}
		pipeOpts = optionsFromConfig(p, pipeOpts)
		printInfo("Loaded project %s", StyleHighlight.Render(opts.project))
	}

	return pipeOpts, nil
}

// outputBase derives the artifact base path. Explicit --output wins;
// a loaded project names its own files; otherwise "scene".
func outputBase(output, project string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if ext == ".png" || ext == ".stl" || ext == ".glb" {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if project != "" {
		return project
	}
	return "scene"
}

// writeArtifact writes artifact bytes, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
