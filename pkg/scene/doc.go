// Package scene assembles the full 3D result: ground, walls, roof,
// compass marker, and the placed PV module array.
//
// [Build] is the single entry point. It is a state-free pipeline: every
// call constructs a fresh [Scene] from its [Config], so concurrent
// builds need no locking. Invalid input never fails a build — bad
// dimensions are clamped, unknown tags fall back to defaults, and a
// module count exceeding total capacity is reported through
// [Summary.Unplaced] rather than an error.
//
// Every mesh in the scene receives the same orientation yaw, rotated
// about the footprint center. The compass marker is the one exception:
// it always points true north.
package scene
