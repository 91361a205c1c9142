package deck

import (
	"testing"

	"github.com/slidefig/slidefig/internal/model"
)

func TestApplyDeletesPlaceholdersAfterInsert(t *testing.T) {
	d, _, hostID := seedSlide(t)

	plan := model.PlacementPlan{
		FinalRect:          model.Rect{X: 10, Y: 10, W: 200, H: 100},
		DeletePlaceholders: []string{hostID},
	}

	newID, err := Apply(d, "1", plan, "fig.png")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	snap, _ := d.Snapshot("1")
	if _, ok := snap.Shape(hostID); ok {
		t.Error("expected placeholder to be deleted")
	}
	sh, ok := snap.Shape(newID)
	if !ok {
		t.Fatal("inserted picture missing")
	}
	if sh.Rect != plan.FinalRect {
		t.Errorf("expected picture at %+v, got %+v", plan.FinalRect, sh.Rect)
	}
}

func TestApplyFillsAndRevertsPlaceholders(t *testing.T) {
	d, _, hostID := seedSlide(t)

	plan := model.PlacementPlan{
		FinalRect:        model.Rect{X: 10, Y: 10, W: 200, H: 100},
		FillPlaceholders: []string{hostID},
	}

	if _, err := Apply(d, "1", plan, "fig.png"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	snap, _ := d.Snapshot("1")
	sh, ok := snap.Shape(hostID)
	if !ok {
		t.Fatal("placeholder missing after apply")
	}
	if sh.HasText {
		t.Error("expected sentinel text to be cleared after apply")
	}
	if !sh.IsEmptyPlaceholder() {
		t.Error("expected placeholder to survive untouched")
	}
}

func TestApplyHostedInsertReturnsPlaceholderID(t *testing.T) {
	d, _, hostID := seedSlide(t)

	plan := model.PlacementPlan{
		FinalRect:       model.Rect{X: 100, Y: 200, W: 600, H: 400},
		HostPlaceholder: hostID,
	}

	newID, err := Apply(d, "1", plan, "fig.png")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if newID != hostID {
		t.Errorf("expected the host placeholder's ID %s, got %s", hostID, newID)
	}
}

func TestApplyReplaceRestoresZOrder(t *testing.T) {
	d := NewMemDeck()
	d.AddSlide("1", model.SlideDimensions{Width: 1280, Height: 720})

	back, _ := d.InsertPicture("1", "back.png", model.Rect{W: 100, H: 100})
	_, _ = d.InsertPicture("1", "mid.png", model.Rect{X: 200, W: 100, H: 100})
	front, _ := d.InsertPicture("1", "front.png", model.Rect{X: 400, W: 100, H: 100})

	backZ, _ := d.ShapeZOrder("1", back)

	plan := model.PlacementPlan{
		FinalRect:     model.Rect{W: 100, H: 100},
		ReplaceTarget: back,
		TargetZOrder:  backZ,
	}

	newID, err := Apply(d, "1", plan, "fig.png")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, err := d.ShapeZOrder("1", back); err == nil {
		t.Error("expected replaced picture to be gone")
	}
	z, err := d.ShapeZOrder("1", newID)
	if err != nil {
		t.Fatalf("ShapeZOrder failed: %v", err)
	}
	if z != backZ {
		t.Errorf("expected restored z-order %d, got %d", backZ, z)
	}
	frontZ, _ := d.ShapeZOrder("1", front)
	if frontZ != 3 {
		t.Errorf("expected untouched front picture at z=3, got %d", frontZ)
	}
}

func TestApplySkipsDeletingCapturingPlaceholder(t *testing.T) {
	d, _, hostID := seedSlide(t)

	// The plan wants placeholders gone, but the insert lands exactly on
	// the host rect and is captured into it; deleting it would delete
	// the picture.
	plan := model.PlacementPlan{
		FinalRect:          model.Rect{X: 100, Y: 200, W: 600, H: 400},
		DeletePlaceholders: []string{hostID},
	}

	newID, err := Apply(d, "1", plan, "fig.png")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if newID != hostID {
		t.Fatalf("expected capture into %s, got %s", hostID, newID)
	}

	snap, _ := d.Snapshot("1")
	sh, ok := snap.Shape(hostID)
	if !ok {
		t.Fatal("captured placeholder was deleted")
	}
	if !sh.HasContent {
		t.Error("expected placeholder to still hold the picture")
	}
}
