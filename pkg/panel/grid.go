package panel

import "math"

// Spec is the module footprint shared by every placement call within
// one build. It travels through the configuration rather than living in
// package-level state, so tests can vary module sizes freely.
type Spec struct {
	Width     float64 `json:"width" toml:"width"`         // along the surface length, meters
	Height    float64 `json:"height" toml:"height"`       // along the surface width, meters
	Margin    float64 `json:"margin" toml:"margin"`       // spacing between modules and to edges
	Thickness float64 `json:"thickness" toml:"thickness"` // frame depth, meters
}

// DefaultSpec returns the footprint of a common 108-half-cell module
// mounted in landscape.
func DefaultSpec() Spec {
	return Spec{Width: 1.722, Height: 1.134, Margin: 0.08, Thickness: 0.04}
}

// Position is one module anchor on a surface, in surface-local
// coordinates. Index is the 0-based generation index the manual-removal
// list refers to; it is assigned before any thinning.
type Position struct {
	X, Y  float64
	Index int
}

// GridSize returns how many full columns and rows fit on an l-by-w
// surface with margin on all sides. A nonzero surface always reports at
// least one column and one row.
func GridSize(l, w float64, spec Spec) (cols, rows int) {
	if l <= 0 || w <= 0 {
		return 0, 0
	}
	cols = int(math.Floor(l / (spec.Width + spec.Margin)))
	rows = int(math.Floor(w / (spec.Height + spec.Margin)))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Capacity is the exact module count the grid packer will produce for
// the surface.
func Capacity(l, w float64, spec Spec) int {
	cols, rows := GridSize(l, w, spec)
	return cols * rows
}

// EstimateCapacity applies the coverage-efficiency heuristic used when
// deciding overflow allocation: usable area is assumed to be ~70% of
// the raw surface. This is a heuristic inherited from surveying typical
// layouts, not a packing bound; the exact count is [Capacity].
func EstimateCapacity(l, w float64, spec Spec) int {
	if l <= 0 || w <= 0 {
		return 0
	}
	const coverage = 0.7
	return int(math.Floor(l * w * coverage / (spec.Width * spec.Height)))
}

// linspace returns n points evenly spaced over [lo, hi] inclusive. For
// n == 1 the single point is the interval midpoint.
func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Grid produces the deterministic row-major anchor sequence for an
// l-by-w surface: the top row (largest y) first, columns left to right.
// Anchors are module centers.
func Grid(l, w float64, spec Spec) []Position {
	cols, rows := GridSize(l, w, spec)
	if cols == 0 || rows == 0 {
		return nil
	}
	xs := linspace(spec.Margin+spec.Width/2, l-spec.Margin-spec.Width/2, cols)
	ys := linspace(spec.Margin+spec.Height/2, w-spec.Margin-spec.Height/2, rows)

	out := make([]Position, 0, cols*rows)
	for r := rows - 1; r >= 0; r-- {
		for c := 0; c < cols; c++ {
			out = append(out, Position{X: xs[c], Y: ys[r], Index: len(out)})
		}
	}
	return out
}

// Select applies the layout policy to an auto-generated sequence and
// returns at most requested positions. Auto mode takes the head of the
// sequence; manual mode first drops entries whose generation index is
// in the removal set. Out-of-range removal indices are no-ops.
func Select(positions []Position, requested int, cfg LayoutConfig) []Position {
	if requested <= 0 {
		return nil
	}
	if cfg.Mode == ModeManual {
		removed := cfg.removedSet()
		kept := make([]Position, 0, len(positions))
		for _, p := range positions {
			if !removed[p.Index] {
				kept = append(kept, p)
			}
		}
		positions = kept
	}
	if requested < len(positions) {
		positions = positions[:requested]
	}
	return positions
}
