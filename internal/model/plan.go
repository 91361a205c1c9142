package model

// RankKind names one of the orderings a picture can be selected by.
type RankKind int

const (
	ByCreation RankKind = iota // Ascending creation index
	ByLeft                     // Ascending left edge
	ByTop                      // Ascending top edge
	ByZOrder                   // Front-most first (rank 1 = most in front)
)

func (k RankKind) String() string {
	switch k {
	case ByLeft:
		return "left"
	case ByTop:
		return "top"
	case ByZOrder:
		return "z-order"
	default:
		return "creation"
	}
}

// SelectionCriterion picks one picture out of many: order the pictures
// by Kind, then take the shape at the signed 1-based Index. Negative
// indices count from the end, Python style; 0 is invalid.
type SelectionCriterion struct {
	Kind  RankKind `json:"kind"`
	Index int      `json:"index"`
}

// NewCriterion builds a SelectionCriterion from the four optional
// per-ordering indices of the public API. At most one may be set;
// supplying two or more fails with ErrAmbiguousSelection. Supplying
// none returns nil, which the selector accepts only when exactly one
// picture exists on the slide.
func NewCriterion(picNo, leftNo, topNo, zOrderNo *int) (*SelectionCriterion, error) {
	var crit *SelectionCriterion
	set := 0
	for _, c := range []struct {
		no   *int
		kind RankKind
	}{
		{picNo, ByCreation},
		{leftNo, ByLeft},
		{topNo, ByTop},
		{zOrderNo, ByZOrder},
	} {
		if c.no != nil {
			set++
			crit = &SelectionCriterion{Kind: c.kind, Index: *c.no}
		}
	}
	if set > 1 {
		return nil, wrapf(ErrAmbiguousSelection, "%d selection criteria supplied, want at most one", set)
	}
	return crit, nil
}

// PlacementPlan is the sole output of the placement pipeline. It is a
// set of instructions for the presentation application; the planner
// itself mutates nothing.
type PlacementPlan struct {
	// FinalRect is where the picture goes, in pixels. The planner does
	// not clamp: an out-of-bounds rect is passed through as-is.
	FinalRect Rect `json:"final_rect"`

	// HostPlaceholder, when non-empty, is the ID of the empty picture
	// placeholder the figure should occupy. When set, DeletePlaceholders
	// and FillPlaceholders are always empty: deleting the picture later
	// restores the placeholder, so nothing else may be touched.
	HostPlaceholder string `json:"host_placeholder,omitempty"`

	// DeletePlaceholders lists empty placeholders to delete by ID, only
	// after the new picture has been inserted. Inserting first avoids a
	// transiently empty slide and keeps the snapshot IDs valid.
	DeletePlaceholders []string `json:"delete_placeholders,omitempty"`

	// FillPlaceholders lists empty placeholders to stuff with sentinel
	// text before insertion and clear again afterwards, so the host
	// application does not capture the picture into one of them. Used
	// when placeholders are kept rather than deleted.
	FillPlaceholders []string `json:"fill_placeholders,omitempty"`

	// ReplaceTarget, when non-empty, is the ID of an existing picture to
	// delete before inserting; FinalRect is that picture's rect.
	ReplaceTarget string `json:"replace_target,omitempty"`

	// TargetZOrder, when positive, is the z-order position the inserted
	// picture should be pushed back to.
	TargetZOrder int `json:"target_z_order,omitempty"`
}

// ReplacePlan is the output of replacement planning: which picture to
// remove and how to place its successor.
type ReplacePlan struct {
	// Target is the ID of the picture being replaced.
	Target string `json:"target"`

	// CapturedRect is the target's rectangle at snapshot time; the new
	// picture is placed there.
	CapturedRect Rect `json:"captured_rect"`

	// Placement places the new picture. Its ReplaceTarget equals Target
	// and its TargetZOrder carries the old picture's z-order when
	// requested.
	Placement PlacementPlan `json:"placement"`
}
