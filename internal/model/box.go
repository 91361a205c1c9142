package model

import "fmt"

// BoxSpec describes where a figure should land on a slide. Exactly one
// of three forms applies:
//
//   - auto: neither Preset nor Coords set. The planner looks for an
//     empty picture placeholder and falls back to the "Center" preset.
//   - preset: a case-insensitive preset name such as "TopRightXL".
//   - coords: four numbers [x, y, w, h]. If all four lie in [0,1] they
//     are fractions of the slide size, otherwise all four are pixels.
//     The all-or-nothing rule is deliberate: [0, 0, 1, 300] reads as
//     pixels, never as "full width, 300px tall".
type BoxSpec struct {
	Preset string    `json:"preset,omitempty"`
	Coords []float64 `json:"coords,omitempty"`
}

// AutoBox returns the auto-detect box specification.
func AutoBox() BoxSpec { return BoxSpec{} }

// PresetBox returns a box specification naming a preset.
func PresetBox(name string) BoxSpec { return BoxSpec{Preset: name} }

// CoordBox returns a box specification from explicit coordinates.
func CoordBox(x, y, w, h float64) BoxSpec {
	return BoxSpec{Coords: []float64{x, y, w, h}}
}

// IsAuto reports whether the spec asks for placeholder auto-detection.
func (b BoxSpec) IsAuto() bool { return b.Preset == "" && len(b.Coords) == 0 }

// Fractional reports whether all four coordinates lie in [0,1] and are
// therefore read as fractions of the slide dimensions.
func (b BoxSpec) Fractional() bool {
	if len(b.Coords) != 4 {
		return false
	}
	for _, v := range b.Coords {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func (b BoxSpec) String() string {
	switch {
	case b.Preset != "":
		return fmt.Sprintf("preset %q", b.Preset)
	case len(b.Coords) == 4:
		return fmt.Sprintf("[%g, %g, %g, %g]", b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3])
	default:
		return "auto"
	}
}
