package deck

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/slidefig/slidefig/internal/model"
)

// MemDeck is an in-memory Deck used by tests and the CLI's dry-run
// mode. Shape IDs stay valid across deletions of other shapes, and
// z-order positions are re-ranked the way a real presentation does it.
type MemDeck struct {
	slides map[string]*memSlide
}

type memSlide struct {
	dims   model.SlideDimensions
	shapes []*memShape // in creation order
	nextIx int
}

type memShape struct {
	rec  model.ShapeRecord
	text string
}

// NewMemDeck returns an empty in-memory deck.
func NewMemDeck() *MemDeck {
	return &MemDeck{slides: map[string]*memSlide{}}
}

// AddSlide creates an empty slide with the given ID and dimensions.
func (d *MemDeck) AddSlide(slideID string, dims model.SlideDimensions) {
	d.slides[slideID] = &memSlide{dims: dims}
}

// FromSnapshots builds a deck out of slide snapshots, preserving the
// recorded creation indices and z-orders. Used to replay a captured
// deck state in dry runs and tests.
func FromSnapshots(snaps []model.SlideSnapshot) *MemDeck {
	d := NewMemDeck()
	for _, snap := range snaps {
		sl := &memSlide{dims: snap.Dims}
		for _, rec := range snap.Shapes {
			if rec.ID == "" {
				rec.ID = uuid.New().String()[:8]
			}
			sl.shapes = append(sl.shapes, &memShape{rec: rec})
			if rec.CreationIndex >= sl.nextIx {
				sl.nextIx = rec.CreationIndex + 1
			}
		}
		d.slides[snap.SlideID] = sl
	}
	return d
}

// AddShape places a shape on the slide, assigning an ID (when the
// record has none), a creation index and the front-most z-order
// position. Returns the shape's ID.
func (d *MemDeck) AddShape(slideID string, rec model.ShapeRecord) (string, error) {
	sl, ok := d.slides[slideID]
	if !ok {
		return "", fmt.Errorf("%w: %s", model.ErrSlideNotFound, slideID)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()[:8]
	}
	rec.CreationIndex = sl.nextIx
	sl.nextIx++
	rec.ZOrder = len(sl.shapes) + 1
	sl.shapes = append(sl.shapes, &memShape{rec: rec})
	return rec.ID, nil
}

func (d *MemDeck) slide(slideID string) (*memSlide, error) {
	sl, ok := d.slides[slideID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrSlideNotFound, slideID)
	}
	return sl, nil
}

func (sl *memSlide) shape(shapeID string) (*memShape, error) {
	for _, sh := range sl.shapes {
		if sh.rec.ID == shapeID {
			return sh, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", model.ErrShapeNotFound, shapeID)
}

// Snapshot implements Deck.
func (d *MemDeck) Snapshot(slideID string) (model.SlideSnapshot, error) {
	sl, err := d.slide(slideID)
	if err != nil {
		return model.SlideSnapshot{}, err
	}
	snap := model.SlideSnapshot{SlideID: slideID, Dims: sl.dims}
	for _, sh := range sl.shapes {
		rec := sh.rec
		rec.HasText = rec.HasText || sh.text != ""
		snap.Shapes = append(snap.Shapes, rec)
	}
	return snap, nil
}

// InsertPicture implements Deck. It mimics the host application's
// placeholder capture: when an empty picture placeholder sits at
// exactly the requested rectangle, the picture lands inside it and the
// placeholder's ID is returned.
func (d *MemDeck) InsertPicture(slideID, imagePath string, rect model.Rect) (string, error) {
	sl, err := d.slide(slideID)
	if err != nil {
		return "", err
	}
	for _, sh := range sl.shapes {
		if sh.rec.IsEmptyPictureHost() && sh.text == "" && sh.rec.Rect == rect {
			sh.rec.HasContent = true
			return sh.rec.ID, nil
		}
	}
	return d.AddShape(slideID, model.ShapeRecord{
		Rect: rect,
		Kind: model.ShapePicture,
	})
}

// DeleteShape implements Deck. Shapes in front of the deleted one move
// one z-order position back; a placeholder that held content reverts
// to its empty state instead of vanishing.
func (d *MemDeck) DeleteShape(slideID, shapeID string) error {
	sl, err := d.slide(slideID)
	if err != nil {
		return err
	}
	for i, sh := range sl.shapes {
		if sh.rec.ID != shapeID {
			continue
		}
		if sh.rec.Kind == model.ShapePlaceholder && sh.rec.HasContent {
			sh.rec.HasContent = false
			return nil
		}
		removed := sh.rec.ZOrder
		sl.shapes = append(sl.shapes[:i], sl.shapes[i+1:]...)
		for _, rest := range sl.shapes {
			if rest.rec.ZOrder > removed {
				rest.rec.ZOrder--
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s", model.ErrShapeNotFound, shapeID)
}

// SetShapeText implements Deck.
func (d *MemDeck) SetShapeText(slideID, shapeID, text string) error {
	sl, err := d.slide(slideID)
	if err != nil {
		return err
	}
	sh, err := sl.shape(shapeID)
	if err != nil {
		return err
	}
	sh.text = text
	return nil
}

// SendBackward implements Deck.
func (d *MemDeck) SendBackward(slideID, shapeID string) error {
	sl, err := d.slide(slideID)
	if err != nil {
		return err
	}
	sh, err := sl.shape(shapeID)
	if err != nil {
		return err
	}
	if sh.rec.ZOrder <= 1 {
		return nil
	}
	below := sh.rec.ZOrder - 1
	for _, other := range sl.shapes {
		if other.rec.ZOrder == below {
			other.rec.ZOrder++
			break
		}
	}
	sh.rec.ZOrder = below
	return nil
}

// ShapeZOrder implements Deck.
func (d *MemDeck) ShapeZOrder(slideID, shapeID string) (int, error) {
	sl, err := d.slide(slideID)
	if err != nil {
		return 0, err
	}
	sh, err := sl.shape(shapeID)
	if err != nil {
		return 0, err
	}
	return sh.rec.ZOrder, nil
}
