package model

import "math"

// Rect is an absolute rectangle on a slide, in pixels.
// The origin is the top-left corner of the slide.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns the rectangle's area in square pixels.
func (r Rect) Area() float64 { return r.W * r.H }

// Aspect returns the width/height ratio.
func (r Rect) Aspect() float64 { return r.W / r.H }

// Contains reports whether other lies fully inside r, within a small
// tolerance for floating-point noise.
func (r Rect) Contains(other Rect) bool {
	const eps = 1e-9
	return other.X >= r.X-eps && other.Y >= r.Y-eps &&
		other.Right() <= r.Right()+eps && other.Bottom() <= r.Bottom()+eps
}

// OverlapFraction returns the area of the intersection of r and other,
// as a fraction of other's own area. Returns 0 when the rectangles are
// disjoint or other has no area.
func (r Rect) OverlapFraction(other Rect) float64 {
	if other.W <= 0 || other.H <= 0 {
		return 0
	}
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	w := math.Min(r.Right(), other.Right()) - x
	h := math.Min(r.Bottom(), other.Bottom()) - y
	if w < 0 || h < 0 {
		return 0
	}
	return w * h / other.Area()
}

// SlideDimensions holds the pixel size of a slide. It is supplied by the
// presentation application and never modified by the planner.
type SlideDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scale maps a fractional rectangle (components in [0,1]) onto the slide.
func (d SlideDimensions) Scale(r Rect) Rect {
	return Rect{X: r.X * d.Width, Y: r.Y * d.Height, W: r.W * d.Width, H: r.H * d.Height}
}

// ShapeKind classifies a shape on a slide.
type ShapeKind int

const (
	ShapeOther       ShapeKind = iota // Anything the planner does not care about
	ShapePicture                      // A free-standing picture
	ShapePlaceholder                  // A layout placeholder (may or may not hold content)
	ShapeTextBox
	ShapeChart
	ShapeTable
	ShapeMedia
	ShapeGroup
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePicture:
		return "Picture"
	case ShapePlaceholder:
		return "Placeholder"
	case ShapeTextBox:
		return "TextBox"
	case ShapeChart:
		return "Chart"
	case ShapeTable:
		return "Table"
	case ShapeMedia:
		return "Media"
	case ShapeGroup:
		return "Group"
	default:
		return "Other"
	}
}

// PlaceholderKind refines ShapePlaceholder by what the layout intended
// the placeholder to hold.
type PlaceholderKind int

const (
	PlaceholderNone     PlaceholderKind = iota // Not a placeholder
	PlaceholderTitle                           // Slide title
	PlaceholderSubtitle                        // Slide subtitle
	PlaceholderBody                            // Body text
	PlaceholderObject                          // Generic content (text or picture)
	PlaceholderBitmap                          // Bitmap content
	PlaceholderPicture                         // Picture content
	PlaceholderChart
	PlaceholderTable
	PlaceholderOther
)

// IsTitle reports whether the placeholder is a title, subtitle or body
// text placeholder. These are never deleted or filled by a placement
// plan; their text belongs to the slide author.
func (k PlaceholderKind) IsTitle() bool {
	return k == PlaceholderTitle || k == PlaceholderSubtitle || k == PlaceholderBody
}

// IsPictureHost reports whether the placeholder can host a picture.
func (k PlaceholderKind) IsPictureHost() bool {
	return k == PlaceholderObject || k == PlaceholderBitmap || k == PlaceholderPicture
}

// ShapeRecord is a snapshot of one shape on one slide at the moment of a
// query. ID is opaque and stays valid even if other shapes are deleted
// afterwards; plans always refer to shapes by ID, never by list position.
type ShapeRecord struct {
	ID            string          `json:"id"`
	Rect          Rect            `json:"rect"`
	Kind          ShapeKind       `json:"kind"`
	Placeholder   PlaceholderKind `json:"placeholder,omitempty"`
	HasText       bool            `json:"has_text,omitempty"`
	HasContent    bool            `json:"has_content,omitempty"` // picture/chart/table inside a placeholder
	CreationIndex int             `json:"creation_index"`
	ZOrder        int             `json:"z_order"` // higher = closer to the front
}

// IsPicture reports whether the shape counts as a picture for selection
// and replacement: either a free-standing picture or a picture-hosting
// placeholder that already holds content.
func (s ShapeRecord) IsPicture() bool {
	if s.Kind == ShapePicture {
		return true
	}
	return s.Kind == ShapePlaceholder && s.Placeholder.IsPictureHost() && s.HasContent
}

// IsEmptyPlaceholder reports whether the shape is a placeholder with no
// text and no content. Classification is fixed at snapshot time.
func (s ShapeRecord) IsEmptyPlaceholder() bool {
	return s.Kind == ShapePlaceholder && !s.HasText && !s.HasContent
}

// IsEmptyPictureHost reports whether the shape is an empty placeholder
// that a newly inserted picture may occupy.
func (s ShapeRecord) IsEmptyPictureHost() bool {
	return s.IsEmptyPlaceholder() && s.Placeholder.IsPictureHost()
}

// SlideSnapshot is everything the planner reads about a slide: its
// dimensions and the shapes present when the snapshot was taken. The
// snapshot is read once per planning call and never re-read mid-call.
type SlideSnapshot struct {
	SlideID string          `json:"slide_id"`
	Dims    SlideDimensions `json:"dims"`
	Shapes  []ShapeRecord   `json:"shapes"`
}

// Pictures returns the picture shapes in creation order.
func (s SlideSnapshot) Pictures() []ShapeRecord {
	var pics []ShapeRecord
	for _, sh := range s.Shapes {
		if sh.IsPicture() {
			pics = append(pics, sh)
		}
	}
	return pics
}

// Shape returns the record with the given ID, if present.
func (s SlideSnapshot) Shape(id string) (ShapeRecord, bool) {
	for _, sh := range s.Shapes {
		if sh.ID == id {
			return sh, true
		}
	}
	return ShapeRecord{}, false
}
