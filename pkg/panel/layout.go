package panel

import (
	"io"

	"github.com/BurntSushi/toml"
)

// Mode selects between automatic and manually edited placement.
type Mode string

// Placement modes.
const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// MountMode selects how modules are oriented on a flat roof. Pitched
// roofs ignore it: modules there are coplanar with the roof surface.
type MountMode string

// Flat-roof mount modes.
const (
	// MountSouth tilts every module toward the dominant compass
	// direction implied by the building rotation.
	MountSouth MountMode = "south"

	// MountEastWest alternates module yaw by placement-index parity
	// with a lower shared tilt, approximating a sawtooth array.
	MountEastWest MountMode = "east-west"
)

// Tilt angles for flat-roof mounting.
const (
	SouthTilt    = 20.0 // degrees, MountSouth
	EastWestTilt = 10.0 // degrees, MountEastWest
)

// Orientation returns the yaw and tilt for the module at the given
// placement index under this mount mode.
func (m MountMode) Orientation(index int) (yawDeg, tiltDeg float64) {
	if m == MountEastWest {
		if index%2 == 0 {
			return -90, EastWestTilt
		}
		return 90, EastWestTilt
	}
	return 0, SouthTilt
}

// Outbuilding describes the auxiliary flat-roofed structure used for
// overflow placement, positioned relative to the main building.
type Outbuilding struct {
	Length  float64 `json:"length" toml:"length"`
	Width   float64 `json:"width" toml:"width"`
	Height  float64 `json:"height" toml:"height"`
	OffsetX float64 `json:"offset_x" toml:"offset_x"`
	OffsetY float64 `json:"offset_y" toml:"offset_y"`
}

// DefaultOutbuilding returns a garage-sized auxiliary structure.
func DefaultOutbuilding() Outbuilding {
	return Outbuilding{Length: 6, Width: 4, Height: 2.5}
}

// LayoutConfig is the placement policy supplied by the UI collaborator.
// It round-trips through TOML for save/restore; decoding tolerates
// unknown fields so older files keep loading.
type LayoutConfig struct {
	Mode           Mode        `json:"mode" toml:"mode"`
	UseOutbuilding bool        `json:"use_outbuilding" toml:"use_outbuilding"`
	UseFacade      bool        `json:"use_facade" toml:"use_facade"`
	RemovedIndices []int       `json:"removed_indices,omitempty" toml:"removed_indices"`
	Outbuilding    Outbuilding `json:"outbuilding" toml:"outbuilding"`
}

// DefaultLayout returns the automatic policy with no fallbacks enabled.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{Mode: ModeAuto, Outbuilding: DefaultOutbuilding()}
}

// removedSet turns the removal list into a lookup set. Duplicates and
// out-of-range values are harmless; they simply never match.
func (c LayoutConfig) removedSet() map[int]bool {
	if len(c.RemovedIndices) == 0 {
		return nil
	}
	set := make(map[int]bool, len(c.RemovedIndices))
	for _, i := range c.RemovedIndices {
		set[i] = true
	}
	return set
}

// EncodeTOML writes the layout in its stable text form.
func (c LayoutConfig) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// DecodeTOML reads a layout previously written by EncodeTOML. Missing
// fields keep their zero values except the mode, which defaults to
// auto.
func DecodeTOML(r io.Reader) (LayoutConfig, error) {
	cfg := LayoutConfig{Mode: ModeAuto}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return LayoutConfig{}, err
	}
	if cfg.Mode != ModeManual {
		cfg.Mode = ModeAuto
	}
	return cfg, nil
}
