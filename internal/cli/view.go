package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/scene"
	"github.com/mkarlsen/pvscene/pkg/snapshot"
)

// viewCommand creates the view command: an interactive terminal orbit
// viewer for the assembled scene.
func (c *CLI) viewCommand() *cobra.Command {
	opts := buildOpts{}
	var project string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Inspect the scene in an interactive wireframe viewer",
		Long: `View assembles the scene and opens a terminal wireframe viewer.

Keys: arrows or h/j/k/l orbit, +/- zoom, s writes a PNG snapshot of the
current view, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.project = project
			ctx := withLogger(cmd.Context(), c.Logger)

			pipeOpts, err := c.pipelineOptions(ctx, &opts)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			sc, summary, err := runner.Build(ctx, pipeOpts)
			if err != nil {
				return err
			}

			model := newViewerModel(sc, summary)
			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(viewerModel); ok && m.savedPath != "" {
				printFile(m.savedPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.quantity, "quantity", "n", 0, "number of PV modules to place")
	cmd.Flags().StringVar(&opts.roofType, "roof", "", "roof shape")
	cmd.Flags().Float64Var(&opts.pitch, "pitch", 0, "roof pitch in degrees")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "facing direction")
	cmd.Flags().StringVarP(&project, "project", "p", "", "load a saved project")

	return cmd
}

// =============================================================================
// viewerModel - terminal wireframe orbit viewer
// =============================================================================

// viewerModel is the bubbletea model for the scene viewer.
type viewerModel struct {
	scene   *scene.Scene
	summary scene.Summary

	azimuth   float64
	elevation float64
	zoom      float64

	width     int
	height    int
	savedPath string
	status    string
}

func newViewerModel(sc *scene.Scene, sum scene.Summary) viewerModel {
	cam := snapshot.DefaultCamera()
	return viewerModel{
		scene:     sc,
		summary:   sum,
		azimuth:   cam.AzimuthDeg,
		elevation: cam.ElevationDeg,
		zoom:      1,
		width:     80,
		height:    24,
	}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.azimuth = math.Mod(m.azimuth+360-10, 360)
		case "right", "l":
			m.azimuth = math.Mod(m.azimuth+10, 360)
		case "up", "k":
			if m.elevation < 85 {
				m.elevation += 5
			}
		case "down", "j":
			if m.elevation > 5 {
				m.elevation -= 5
			}
		case "+", "=":
			if m.zoom < 8 {
				m.zoom *= 1.25
			}
		case "-", "_":
			if m.zoom > 0.2 {
				m.zoom /= 1.25
			}
		case "s":
			m.savedPath, m.status = m.saveSnapshot()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// saveSnapshot writes a PNG of the current view next to the cwd.
func (m viewerModel) saveSnapshot() (path, status string) {
	cam := snapshot.Camera{AzimuthDeg: m.azimuth, ElevationDeg: m.elevation, Zoom: m.zoom}
	data, err := snapshot.Render(m.scene, cam)
	if err != nil {
		return m.savedPath, "snapshot failed"
	}
	path = fmt.Sprintf("view_%03.0f_%02.0f.png", m.azimuth, m.elevation)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return m.savedPath, "snapshot failed"
	}
	return path, "saved " + path
}

func (m viewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("pvscene viewer"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("az %.0f°  el %.0f°  zoom %.2fx", m.azimuth, m.elevation, m.zoom)))
	b.WriteString("\n")

	canvasH := m.height - 4
	if canvasH < 8 {
		canvasH = 8
	}
	canvasW := m.width
	if canvasW < 20 {
		canvasW = 20
	}
	b.WriteString(m.renderWireframe(canvasW, canvasH))

	b.WriteString(StyleDim.Render(fmt.Sprintf(
		"%d modules placed (%d unplaced)  ·  arrows orbit  +/- zoom  s snapshot  q quit",
		m.summary.Placed(), m.summary.Unplaced)))
	if m.status != "" {
		b.WriteString("  " + StyleSuccess.Render(m.status))
	}
	b.WriteString("\n")

	return b.String()
}

// renderWireframe projects every triangle edge onto a character grid.
// Terminal cells are roughly twice as tall as wide, so Y is compressed.
func (m viewerModel) renderWireframe(w, h int) string {
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = make([]rune, w)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	az := geom.Radians(m.azimuth)
	el := geom.Radians(m.elevation)
	fwd := r3.Vec{
		X: -math.Sin(az) * math.Cos(el),
		Y: -math.Cos(az) * math.Cos(el),
		Z: -math.Sin(el),
	}
	right := r3.Unit(r3.Cross(fwd, r3.Vec{Z: 1}))
	up := r3.Cross(right, fwd)

	lo, hi := geom.BoundsOf(m.scene.Meshes)
	center := r3.Scale(0.5, r3.Add(lo, hi))
	radius := r3.Norm(r3.Sub(hi, lo)) / 2
	if radius == 0 {
		radius = 1
	}
	scale := m.zoom * math.Min(float64(w), 2*float64(h)) / (2.2 * radius)

	project := func(p r3.Vec) (int, int) {
		rel := r3.Sub(p, center)
		x := float64(w)/2 + r3.Dot(rel, right)*scale
		y := float64(h)/2 - r3.Dot(rel, up)*scale/2
		return int(x), int(y)
	}

	mark := func(tag string) rune {
		switch {
		case strings.HasPrefix(tag, scene.TagPanel):
			return '#'
		case tag == scene.TagCompass:
			return '^'
		case tag == scene.TagGround:
			return '.'
		default:
			return '+'
		}
	}

	for _, mesh := range m.scene.Meshes {
		ch := mark(mesh.Tag)
		for _, tri := range mesh.Tris {
			for i := 0; i < 3; i++ {
				x0, y0 := project(tri[i])
				x1, y1 := project(tri[(i+1)%3])
				drawLine(grid, x0, y0, x1, y1, ch)
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}

// drawLine plots a character line with Bresenham's algorithm, clipping
// to the grid.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, ch rune) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = ch
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
