package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/pvscene/pkg/pipeline"
	"github.com/mkarlsen/pvscene/pkg/store"
)

// projectCommand creates the project management command.
func (c *CLI) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved scene configurations",
	}

	cmd.AddCommand(c.projectSaveCommand())
	cmd.AddCommand(c.projectListCommand())
	cmd.AddCommand(c.projectShowCommand())
	cmd.AddCommand(c.projectDeleteCommand())

	return cmd
}

// projectSaveCommand creates the "project save" subcommand.
func (c *CLI) projectSaveCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a scene configuration under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

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
			}
			if len(opts.removed) > 0 {
				pipeOpts.LayoutMode = "manual"
			}
			if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			st, err := newProjectStore()
			if err != nil {
				return err
			}
			p, err := store.NewProject(name, pipeOpts.ToConfig())
			if err != nil {
				return err
			}
			if err := st.Put(cmd.Context(), p); err != nil {
				return err
			}

			printSuccess("Saved project %s", StyleHighlight.Render(name))
			printDetail("Directory: %s", st.Path())
			printNextStep("build it", "pvscene build --project "+name)
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.length, "length", 0, "building length in meters")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "building width in meters")
	cmd.Flags().Float64Var(&opts.wallHeight, "wall-height", 0, "eave height in meters")
	cmd.Flags().StringVar(&opts.roofType, "roof", "", "roof shape")
	cmd.Flags().Float64Var(&opts.pitch, "pitch", 0, "roof pitch in degrees")
	cmd.Flags().StringVar(&opts.covering, "covering", "", "roof covering description")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "facing direction")
	cmd.Flags().IntVarP(&opts.quantity, "quantity", "n", 0, "number of PV modules")
	cmd.Flags().StringVar(&opts.mount, "mount", "", "flat-roof mount mode")
	cmd.Flags().IntSliceVar(&opts.removed, "remove", nil, "module grid indices to leave empty")
	cmd.Flags().BoolVar(&opts.outbuilding, "outbuilding", false, "overflow onto an outbuilding roof")
	cmd.Flags().BoolVar(&opts.facade, "facade", false, "overflow onto the south facade")

	return cmd
}

// projectListCommand creates the "project list" subcommand.
func (c *CLI) projectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newProjectStore()
			if err != nil {
				return err
			}
			names, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No saved projects")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// projectShowCommand creates the "project show" subcommand.
func (c *CLI) projectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved project configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newProjectStore()
			if err != nil {
				return err
			}
			p, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cfg := p.Config
			fmt.Println(StyleTitle.Render(p.Name))
			printDetail("building: %.1f x %.1f m, eaves %.1f m",
				cfg.Building.Length, cfg.Building.Width, cfg.Building.WallHeight)
			printDetail("roof: %s, pitch %.0f°", cfg.Roof.Type, cfg.Roof.PitchDeg)
			printDetail("orientation: %s", cfg.Orientation)
			printDetail("modules: %d (%s mount, %s layout)", cfg.Quantity, cfg.Mount, cfg.Layout.Mode)
			if cfg.Layout.UseOutbuilding || cfg.Layout.UseFacade {
				printDetail("overflow: outbuilding=%v facade=%v",
					cfg.Layout.UseOutbuilding, cfg.Layout.UseFacade)
			}
			printDetail("updated: %s", p.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// projectDeleteCommand creates the "project delete" subcommand.
func (c *CLI) projectDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newProjectStore()
			if err != nil {
				return err
			}
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted project %s", args[0])
			return nil
		},
	}
}

// optionsFromConfig lifts a saved project into pipeline options, letting
// any non-zero flag value override the stored configuration.
func optionsFromConfig(p *store.Project, flags pipeline.Options) pipeline.Options {
	cfg := p.Config
	out := flags

	if out.Length == 0 {
		out.Length = cfg.Building.Length
	}
	if out.Width == 0 {
		out.Width = cfg.Building.Width
	}
	if out.WallHeight == 0 {
		out.WallHeight = cfg.Building.WallHeight
	}
	if out.RoofType == "" {
		out.RoofType = string(cfg.Roof.Type)
	}
	if out.PitchDeg == 0 {
		out.PitchDeg = cfg.Roof.PitchDeg
	}
	if out.Covering == "" {
		out.Covering = cfg.Roof.Covering
	}
	if out.Orientation == "" {
		out.Orientation = cfg.Orientation
	}
	if out.Quantity == 0 {
		out.Quantity = cfg.Quantity
	}
	if out.Mount == "" {
		out.Mount = string(cfg.Mount)
	}
	if out.LayoutMode == "" {
		out.LayoutMode = string(cfg.Layout.Mode)
	}
	if len(out.Removed) == 0 {
		out.Removed = cfg.Layout.RemovedIndices
	}
	out.UseOutbuilding = out.UseOutbuilding || cfg.Layout.UseOutbuilding
	out.UseFacade = out.UseFacade || cfg.Layout.UseFacade
	return out
}
