package model

import "math"

// PositionRow is one row of a shape position report:
// the rounded rectangle of a shape plus its kind.
type PositionRow struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	W    float64   `json:"w"`
	H    float64   `json:"h"`
	Kind ShapeKind `json:"kind"`
}

// round1 rounds to one decimal place, matching how shape positions are
// reported to callers.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ShapePositions reports the position of every shape on the slide, in
// creation order, rounded to a tenth of a pixel.
func (s SlideSnapshot) ShapePositions() []PositionRow {
	rows := make([]PositionRow, 0, len(s.Shapes))
	for _, sh := range s.Shapes {
		rows = append(rows, PositionRow{
			X:    round1(sh.Rect.X),
			Y:    round1(sh.Rect.Y),
			W:    round1(sh.Rect.W),
			H:    round1(sh.Rect.H),
			Kind: sh.Kind,
		})
	}
	return rows
}

// PicturePositions reports the position of every picture on the slide,
// in creation order, rounded to a tenth of a pixel.
func (s SlideSnapshot) PicturePositions() []PositionRow {
	var rows []PositionRow
	for _, sh := range s.Shapes {
		if sh.IsPicture() {
			rows = append(rows, PositionRow{
				X:    round1(sh.Rect.X),
				Y:    round1(sh.Rect.Y),
				W:    round1(sh.Rect.W),
				H:    round1(sh.Rect.H),
				Kind: sh.Kind,
			})
		}
	}
	return rows
}
