package preset

import (
	"errors"
	"math"
	"testing"

	"github.com/slidefig/slidefig/internal/model"
)

func rectsClose(a, b model.Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

func TestResolveAnchor(t *testing.T) {
	reg := NewRegistry()

	got, err := reg.Resolve("Full")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !rectsClose(got, model.Rect{X: 0, Y: 0, W: 1, H: 1}) {
		t.Errorf("expected full-slide rect, got %+v", got)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry()

	a, err := reg.Resolve("TopRightXXL")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	b, err := reg.Resolve("topRightXXL")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a != b {
		t.Errorf("expected identical rects, got %+v and %+v", a, b)
	}
}

func TestResolveComposesModifierWithinSize(t *testing.T) {
	reg := NewRegistry()

	// TopRightXXL: topright quadrant of the full-slide XXL boundary.
	got, err := reg.Resolve("TopRightXXL")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !rectsClose(got, model.Rect{X: 0.5, Y: 0, W: 0.5, H: 0.5}) {
		t.Errorf("expected top-right quadrant, got %+v", got)
	}
}

func TestResolvePicksLongestSizeSuffix(t *testing.T) {
	reg := NewRegistry()

	// "LeftXL" must strip "XL", not just "L".
	xl, err := reg.Resolve("LeftXL")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	l, err := reg.Resolve("LeftL")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if xl == l {
		t.Error("expected XL and L boundaries to differ")
	}
	if math.Abs(xl.Y-0.049) > 1e-9 {
		t.Errorf("expected XL boundary top 0.049, got %g", xl.Y)
	}
}

func TestResolveDefaultSize(t *testing.T) {
	reg := NewRegistry()

	// A bare modifier composes within the default ("") size boundary.
	got, err := reg.Resolve("TopLeft")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := model.Rect{X: 0.0415, Y: 0.227, W: 0.917 * 0.5, H: 0.716 * 0.5}
	if !rectsClose(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestResolveGridCodes(t *testing.T) {
	reg := NewRegistry()

	// Cell 5 of the 2x3 grid is the bottom middle.
	got, err := reg.Resolve("235XXL")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := model.Rect{X: 1.0 / 3, Y: 0.5, W: 1.0 / 3, H: 0.5}
	if !rectsClose(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestResolveUnknownName(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve("NoSuchPlace")
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if !errors.Is(err, model.ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestRegistrationVisibleImmediately(t *testing.T) {
	reg := NewRegistry()

	if reg.Known("Banner") {
		t.Fatal("did not expect Banner before registration")
	}
	if err := reg.RegisterAnchor("Banner", Fragment{0, 0, 1, 0.2}); err != nil {
		t.Fatalf("RegisterAnchor failed: %v", err)
	}
	got, err := reg.Resolve("banner")
	if err != nil {
		t.Fatalf("Resolve failed after registration: %v", err)
	}
	if !rectsClose(got, model.Rect{X: 0, Y: 0, W: 1, H: 0.2}) {
		t.Errorf("expected banner rect, got %+v", got)
	}
}

func TestRegisterSizeExtendsTokenizer(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterSize("S", Fragment{0.25, 0.25, 0.5, 0.5}); err != nil {
		t.Fatalf("RegisterSize failed: %v", err)
	}
	got, err := reg.Resolve("LeftS")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// Left half of the small boundary.
	want := model.Rect{X: 0.25, Y: 0.25, W: 0.25, H: 0.5}
	if !rectsClose(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestResolveFallsBackToShorterSizeToken(t *testing.T) {
	reg := NewRegistry()

	// The "T" size suffixes "TopLeft", but stripping it leaves no
	// modifier; resolution must fall back to the empty size.
	if err := reg.RegisterSize("T", Fragment{0, 0, 0.5, 0.5}); err != nil {
		t.Fatalf("RegisterSize failed: %v", err)
	}

	got, err := reg.Resolve("TopLeft")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := model.Rect{X: 0.0415, Y: 0.227, W: 0.917 * 0.5, H: 0.716 * 0.5}
	if !rectsClose(got, want) {
		t.Errorf("expected default-size composition %+v, got %+v", want, got)
	}

	// Names that genuinely end in the new token still use it.
	got, err = reg.Resolve("RightT")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want = model.Rect{X: 0.25, Y: 0, W: 0.25, H: 0.5}
	if !rectsClose(got, want) {
		t.Errorf("expected T-size composition %+v, got %+v", want, got)
	}
}

func TestRegisterRejectsOutOfRange(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterAnchor("Bad", Fragment{0, 0, 2, 1}); err == nil {
		t.Error("expected error for component > 1")
	}
	if err := reg.RegisterModifier("Bad", Fragment{-0.1, 0, 1, 1}); err == nil {
		t.Error("expected error for negative component")
	}
}
