package engine

import (
	"github.com/slidefig/slidefig/internal/model"
)

// ReplaceRequest carries the caller's replacement options.
type ReplaceRequest struct {
	// Criterion picks which picture to replace. Nil is allowed only when
	// the slide carries exactly one picture.
	Criterion *model.SelectionCriterion

	// KeepZOrder pushes the new picture back to the replaced picture's
	// z-order position after insertion.
	KeepZOrder bool

	// KeepAspect and SourceAspect fit the new figure inside the captured
	// rectangle, as in PlacementRequest.
	KeepAspect   bool
	SourceAspect float64

	// DeletePlaceholders is forwarded to the placement stage.
	DeletePlaceholders bool
}

// PlanReplacement selects a picture, captures its rectangle and plans
// a placement of the new figure in its stead. The captured rectangle
// is pixel-exact by construction, so it bypasses box resolution and
// enters the placement pipeline directly.
func (p *Planner) PlanReplacement(snap model.SlideSnapshot, req ReplaceRequest) (model.ReplacePlan, error) {
	target, err := SelectPicture(snap, req.Criterion)
	if err != nil {
		return model.ReplacePlan{}, err
	}

	placement := p.planResolved(snap, target.Rect, PlacementRequest{
		KeepAspect:         req.KeepAspect,
		SourceAspect:       req.SourceAspect,
		DeletePlaceholders: req.DeletePlaceholders,
	})
	placement.ReplaceTarget = target.ID
	if req.KeepZOrder {
		placement.TargetZOrder = target.ZOrder
	}

	return model.ReplacePlan{
		Target:       target.ID,
		CapturedRect: target.Rect,
		Placement:    placement,
	}, nil
}
