// Package deck is the boundary to the live presentation application.
// The Deck interface is what the planner's plans are executed against;
// MemDeck is an in-memory stand-in for tests and dry runs.
package deck

import (
	"fmt"

	"github.com/slidefig/slidefig/internal/model"
)

// SentinelText is the throwaway text used to fill empty placeholders
// for the duration of an insert, so the application cannot capture the
// new picture into one of them.
const SentinelText = "--TO-BE-REMOVED--"

// Deck abstracts the running presentation application. All calls are
// blocking; failures are returned unchanged to the caller. A slide ID
// that does not exist fails with model.ErrSlideNotFound, a shape ID
// that does not exist with model.ErrShapeNotFound.
type Deck interface {
	// Snapshot reads the slide's dimensions and shapes once. Plans are
	// computed against this snapshot and may go stale if the
	// presentation is edited before the plan is applied.
	Snapshot(slideID string) (model.SlideSnapshot, error)

	// InsertPicture places the image file at the given rectangle and
	// returns the new shape's ID.
	InsertPicture(slideID, imagePath string, rect model.Rect) (string, error)

	// DeleteShape removes the shape with the given ID.
	DeleteShape(slideID, shapeID string) error

	// SetShapeText replaces the shape's text. An empty string clears it.
	SetShapeText(slideID, shapeID, text string) error

	// SendBackward moves the shape one z-order position towards the back.
	SendBackward(slideID, shapeID string) error

	// ShapeZOrder returns the shape's current z-order position
	// (1 = back-most).
	ShapeZOrder(slideID, shapeID string) (int, error)
}

// Apply executes a placement plan against a deck and returns the ID of
// the inserted picture.
//
// The ordering is fixed: delete the replaced picture (if any), fill
// kept placeholders, insert, push the picture back to the target
// z-order, delete marked placeholders by ID, and finally clear the
// filled placeholders. Placeholders are deleted only after the insert
// so the slide is never transiently empty and no snapshot ID is
// invalidated mid-plan.
func Apply(d Deck, slideID string, plan model.PlacementPlan, imagePath string) (string, error) {
	if plan.ReplaceTarget != "" {
		if err := d.DeleteShape(slideID, plan.ReplaceTarget); err != nil {
			return "", fmt.Errorf("deleting replaced picture: %w", err)
		}
	}

	for _, id := range plan.FillPlaceholders {
		if err := d.SetShapeText(slideID, id, SentinelText); err != nil {
			return "", fmt.Errorf("filling placeholder %s: %w", id, err)
		}
	}

	newID, err := d.InsertPicture(slideID, imagePath, plan.FinalRect)
	if err != nil {
		return "", fmt.Errorf("inserting picture: %w", err)
	}

	if plan.TargetZOrder > 0 {
		for {
			z, err := d.ShapeZOrder(slideID, newID)
			if err != nil {
				return "", fmt.Errorf("reading z-order: %w", err)
			}
			if z <= plan.TargetZOrder {
				break
			}
			if err := d.SendBackward(slideID, newID); err != nil {
				return "", fmt.Errorf("restoring z-order: %w", err)
			}
		}
	}

	for _, id := range plan.DeletePlaceholders {
		if id == newID {
			// The insert was captured into this placeholder after all.
			continue
		}
		if err := d.DeleteShape(slideID, id); err != nil {
			return "", fmt.Errorf("deleting placeholder %s: %w", id, err)
		}
	}

	for _, id := range plan.FillPlaceholders {
		if id == newID {
			continue
		}
		if err := d.SetShapeText(slideID, id, ""); err != nil {
			return "", fmt.Errorf("reverting placeholder %s: %w", id, err)
		}
	}

	return newID, nil
}
