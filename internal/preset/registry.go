// Package preset maps human-friendly position names like "TopRightXL"
// onto fractional slide rectangles. A preset name is an anchor, or a
// modifier followed by an optional size token; names are matched
// case-insensitively against whatever is registered at lookup time.
package preset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slidefig/slidefig/internal/model"
)

// Fragment is a partial rectangle with all components in [0,1].
// Anchors and sizes define a full box; a modifier subdivides the box a
// size defines.
type Fragment [4]float64

// Rect converts the fragment to a fractional model.Rect.
func (f Fragment) Rect() model.Rect {
	return model.Rect{X: f[0], Y: f[1], W: f[2], H: f[3]}
}

// Registry holds the preset vocabulary. Consumers take an explicit
// *Registry rather than reading a hidden global, so tests can work on a
// fresh copy. Registration is visible on the very next lookup; nothing
// is cached. Single-threaded use is assumed, like the rest of the
// planner.
type Registry struct {
	anchors   map[string]Fragment // matched against the whole name, lowercase keys
	sizes     map[string]Fragment // matched as a name suffix, uppercase keys
	modifiers map[string]Fragment // matched against the remainder, lowercase keys
}

// NewRegistry returns a registry preloaded with the built-in vocabulary:
// anchors "Center" and "Full"; sizes "" (default), "L", "XL", "XXL";
// modifiers for halves, quadrants and the 2x2 / 2x3 grid codes.
func NewRegistry() *Registry {
	r := &Registry{
		anchors:   map[string]Fragment{},
		sizes:     map[string]Fragment{},
		modifiers: map[string]Fragment{},
	}

	r.anchors["center"] = Fragment{0.0415, 0.227, 0.917, 0.716}
	r.anchors["full"] = Fragment{0, 0, 1, 1}

	// The empty size is the content area of a typical slide layout,
	// leaving room for the title; larger sizes trade title room for
	// figure room.
	r.sizes[""] = Fragment{0.0415, 0.227, 0.917, 0.716}
	r.sizes["L"] = Fragment{0.0415, 0.153, 0.917, 0.790}
	r.sizes["XL"] = Fragment{0.0415, 0.049, 0.917, 0.888}
	r.sizes["XXL"] = Fragment{0, 0, 1, 1}

	mods := map[string]Fragment{
		"center":      {0, 0, 1, 1},
		"left":        {0, 0, 0.5, 1},
		"right":       {0.5, 0, 0.5, 1},
		"topleft":     {0, 0, 0.5, 0.5},
		"topright":    {0.5, 0, 0.5, 0.5},
		"bottomleft":  {0, 0.5, 0.5, 0.5},
		"bottomright": {0.5, 0.5, 0.5, 0.5},
	}
	// Grid codes: "2RC" + cell number, e.g. 232 is the middle-top cell
	// of a 2-row, 3-column grid.
	for code, f := range gridCodes(2, 2) {
		mods[code] = f
	}
	for code, f := range gridCodes(2, 3) {
		mods[code] = f
	}
	for name, f := range mods {
		r.modifiers[name] = f
	}
	return r
}

// gridCodes produces the numeric modifier codes for a rows x cols grid.
// Cells are numbered row-major starting at 1, prefixed with the grid
// shape: cell 3 of a 2x3 grid is "233".
func gridCodes(rows, cols int) map[string]Fragment {
	codes := make(map[string]Fragment, rows*cols)
	cw := 1.0 / float64(cols)
	ch := 1.0 / float64(rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := row*cols + col + 1
			name := fmt.Sprintf("%d%d%d", rows, cols, cell)
			codes[name] = Fragment{float64(col) * cw, float64(row) * ch, cw, ch}
		}
	}
	return codes
}

// validFragment checks the four components are present and in [0,1].
func validFragment(f Fragment) error {
	for i, v := range f {
		if v < 0 || v > 1 {
			return fmt.Errorf("fragment component %d is %g, want [0,1]", i, v)
		}
	}
	return nil
}

// RegisterAnchor adds or replaces a stand-alone preset box.
func (r *Registry) RegisterAnchor(name string, f Fragment) error {
	if err := validFragment(f); err != nil {
		return err
	}
	r.anchors[strings.ToLower(name)] = f
	return nil
}

// RegisterSize adds or replaces a size token, matched as a suffix of
// compound preset names.
func (r *Registry) RegisterSize(name string, f Fragment) error {
	if err := validFragment(f); err != nil {
		return err
	}
	r.sizes[strings.ToUpper(name)] = f
	return nil
}

// RegisterModifier adds or replaces a modifier, a sub-box applied
// within a size's boundary.
func (r *Registry) RegisterModifier(name string, f Fragment) error {
	if err := validFragment(f); err != nil {
		return err
	}
	r.modifiers[strings.ToLower(name)] = f
	return nil
}

// Known reports whether name resolves to a preset.
func (r *Registry) Known(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Resolve turns a preset name into a fractional rectangle.
//
// Anchors match the whole name. Otherwise a registered size token is
// stripped off the end of the name (case-insensitively, longest match
// first; the empty size always matches) and the remainder must be a
// modifier. Shorter size tokens are tried when a longer one leaves no
// valid modifier: with a user-registered "T" size, "TopLeft" ends in
// that token, but only stripping the empty size yields the "topleft"
// modifier. The modifier's box is
// scaled into the size's boundary. Unknown names fail with
// model.ErrPresetNotFound.
func (r *Registry) Resolve(name string) (model.Rect, error) {
	if f, ok := r.anchors[strings.ToLower(name)]; ok {
		return f.Rect(), nil
	}

	upper := strings.ToUpper(name)
	var tokens []string
	for tok := range r.sizes {
		if strings.HasSuffix(upper, tok) {
			tokens = append(tokens, tok)
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })

	for _, tok := range tokens {
		mod, ok := r.modifiers[strings.ToLower(name[:len(name)-len(tok)])]
		if !ok {
			continue
		}
		boundary := r.sizes[tok]
		return model.Rect{
			X: boundary[0] + mod[0]*boundary[2],
			Y: boundary[1] + mod[1]*boundary[3],
			W: boundary[2] * mod[2],
			H: boundary[3] * mod[3],
		}, nil
	}
	return model.Rect{}, fmt.Errorf("%w: %q", model.ErrPresetNotFound, name)
}
