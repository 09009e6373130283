// Package panel computes PV module placements over rectangular surfaces
// and holds the layout policy the surrounding application edits.
//
// Placement is deterministic: a row-major grid of evenly spaced anchor
// positions (top row first) that identical inputs always reproduce.
// Manual edits are expressed as a set of 0-based indices into the
// auto-generated sequence; removal thins the grid but never re-compacts
// it, so saved index lists stay stable as long as the surface and the
// module footprint stay the same.
package panel
