// Package engine plans figure placements and replacements on slides.
// The planner is pure: it reads a slide snapshot and produces a plan;
// executing the plan against the live presentation is the deck
// package's job.
package engine

import (
	"fmt"
	"sort"

	"github.com/slidefig/slidefig/internal/model"
	"github.com/slidefig/slidefig/internal/preset"
)

// fallbackPreset is used when an auto box finds no empty placeholder.
const fallbackPreset = "Center"

// overlapThreshold is the minimum overlap fraction of an existing
// picture's area for overlap-replacement to kick in.
const overlapThreshold = 0.1

// Planner resolves box specifications and builds placement plans. It
// holds an explicit preset registry reference so callers and tests can
// work against isolated vocabularies.
type Planner struct {
	Presets *preset.Registry
}

// New returns a Planner over the given preset registry.
func New(reg *preset.Registry) *Planner {
	return &Planner{Presets: reg}
}

// PlacementRequest carries the caller's placement options.
type PlacementRequest struct {
	// Spec is where the figure should go; the auto spec scans for an
	// empty picture placeholder first.
	Spec model.BoxSpec

	// KeepAspect shrinks the resolved box to the source figure's aspect
	// ratio, re-centered within the box.
	KeepAspect bool

	// SourceAspect is the figure's width/height ratio, used when
	// KeepAspect is set.
	SourceAspect float64

	// DeletePlaceholders marks every empty non-title placeholder for
	// deletion once the figure is in. When false the placeholders are
	// temporarily filled instead, so the application cannot capture the
	// figure into one of them.
	DeletePlaceholders bool

	// ReplaceOverlap looks for an existing picture covering the target
	// box; if one overlaps enough, the new figure takes that picture's
	// exact place (and z-order) and the old picture is deleted.
	ReplaceOverlap bool
}

// ResolveBox turns a non-auto box specification into an absolute pixel
// rectangle on the given slide.
//
// Four coordinates all inside [0,1] are fractions of the slide size;
// any component outside makes all four pixels. There is no mixing: the
// all-or-nothing rule avoids guessing whether 0.5 means half the slide
// or half a pixel, at the documented cost that [0, 0, 1, 300] reads as
// a 1-pixel-wide box.
func (p *Planner) ResolveBox(spec model.BoxSpec, dims model.SlideDimensions) (model.Rect, error) {
	switch {
	case spec.Preset != "":
		frac, err := p.Presets.Resolve(spec.Preset)
		if err != nil {
			return model.Rect{}, err
		}
		return dims.Scale(frac), nil
	case len(spec.Coords) == 4:
		r := model.Rect{X: spec.Coords[0], Y: spec.Coords[1], W: spec.Coords[2], H: spec.Coords[3]}
		if spec.Fractional() {
			return dims.Scale(r), nil
		}
		return r, nil
	case len(spec.Coords) != 0:
		return model.Rect{}, fmt.Errorf("%w: got %d coordinates, want 4", model.ErrInvalidBoundingBox, len(spec.Coords))
	default:
		return model.Rect{}, fmt.Errorf("%w: auto box has no direct resolution", model.ErrInvalidBoundingBox)
	}
}

// FitAspect shrinks rect to the source aspect ratio (width/height),
// keeping it centered within the original rectangle. The result is
// always contained in the input. A non-positive aspect or degenerate
// rect is returned unchanged.
func FitAspect(rect model.Rect, sourceAspect float64) model.Rect {
	if sourceAspect <= 0 || rect.W <= 0 || rect.H <= 0 {
		return rect
	}
	if sourceAspect > rect.Aspect() {
		// Figure is relatively wider: shrink the height.
		newH := rect.W / sourceAspect
		return model.Rect{X: rect.X, Y: rect.Y + rect.H/2 - newH/2, W: rect.W, H: newH}
	}
	newW := rect.H * sourceAspect
	return model.Rect{X: rect.X + rect.W/2 - newW/2, Y: rect.Y, W: newW, H: rect.H}
}

// PlanPlacement builds the placement plan for one figure on one slide.
//
// An auto spec first scans the snapshot, in creation order, for an
// empty picture placeholder; if one exists the figure is hosted in it
// and no other placeholder is touched (deleting the figure later
// restores the placeholder). Otherwise the auto spec falls back to the
// Center preset and planning proceeds as for an explicit box.
func (p *Planner) PlanPlacement(snap model.SlideSnapshot, req PlacementRequest) (model.PlacementPlan, error) {
	spec := req.Spec
	if spec.IsAuto() {
		if host, ok := firstEmptyPictureHost(snap); ok {
			final := host.Rect
			if req.KeepAspect {
				final = FitAspect(final, req.SourceAspect)
			}
			return model.PlacementPlan{FinalRect: final, HostPlaceholder: host.ID}, nil
		}
		spec = model.PresetBox(fallbackPreset)
	}

	resolved, err := p.ResolveBox(spec, snap.Dims)
	if err != nil {
		return model.PlacementPlan{}, fmt.Errorf("resolving box %s: %w", spec, err)
	}
	return p.planResolved(snap, resolved, req), nil
}

// planResolved finishes planning once the target rectangle is known in
// pixels. Shared by explicit-box placement and replacement.
func (p *Planner) planResolved(snap model.SlideSnapshot, resolved model.Rect, req PlacementRequest) model.PlacementPlan {
	plan := model.PlacementPlan{FinalRect: resolved}

	if req.ReplaceOverlap {
		if target, frac := mostOverlapping(resolved, snap.Pictures()); frac > overlapThreshold {
			plan.ReplaceTarget = target.ID
			plan.TargetZOrder = target.ZOrder
			plan.FinalRect = target.Rect
		}
	}

	if req.KeepAspect {
		plan.FinalRect = FitAspect(plan.FinalRect, req.SourceAspect)
	}

	switch {
	case req.DeletePlaceholders:
		plan.DeletePlaceholders = emptyNonTitlePlaceholders(snap)
	case plan.ReplaceTarget == "":
		// Keeping placeholders around: fill them with sentinel text for
		// the duration of the insert so none captures the new picture.
		plan.FillPlaceholders = emptyNonTitlePlaceholders(snap)
	}
	return plan
}

// firstEmptyPictureHost returns the first empty picture placeholder in
// creation order, if any.
func firstEmptyPictureHost(snap model.SlideSnapshot) (model.ShapeRecord, bool) {
	shapes := append([]model.ShapeRecord(nil), snap.Shapes...)
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].CreationIndex < shapes[j].CreationIndex
	})
	for _, sh := range shapes {
		if sh.IsEmptyPictureHost() {
			return sh, true
		}
	}
	return model.ShapeRecord{}, false
}

// mostOverlapping returns the picture whose area is covered the most by
// rect, along with the covered fraction.
func mostOverlapping(rect model.Rect, pics []model.ShapeRecord) (model.ShapeRecord, float64) {
	var best model.ShapeRecord
	bestFrac := 0.0
	for _, pic := range pics {
		if frac := rect.OverlapFraction(pic.Rect); frac > bestFrac {
			best, bestFrac = pic, frac
		}
	}
	return best, bestFrac
}

// emptyNonTitlePlaceholders lists the IDs of empty placeholders that a
// plan may delete or fill. Title, subtitle and body placeholders are
// exempt.
func emptyNonTitlePlaceholders(snap model.SlideSnapshot) []string {
	var ids []string
	for _, sh := range snap.Shapes {
		if sh.IsEmptyPlaceholder() && !sh.Placeholder.IsTitle() {
			ids = append(ids, sh.ID)
		}
	}
	return ids
}
