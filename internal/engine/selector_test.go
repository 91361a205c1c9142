package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidefig/slidefig/internal/model"
)

// threePictures builds a slide with pictures at x = 100, 300, 200 and
// z-orders 3, 1, 2 (3 = front-most), in that creation order.
func threePictures() model.SlideSnapshot {
	return model.SlideSnapshot{
		SlideID: "1",
		Dims:    slide720,
		Shapes: []model.ShapeRecord{
			{ID: "a", Kind: model.ShapePicture, Rect: model.Rect{X: 100, Y: 50, W: 100, H: 100}, CreationIndex: 0, ZOrder: 3},
			{ID: "b", Kind: model.ShapePicture, Rect: model.Rect{X: 300, Y: 20, W: 100, H: 100}, CreationIndex: 1, ZOrder: 1},
			{ID: "c", Kind: model.ShapePicture, Rect: model.Rect{X: 200, Y: 80, W: 100, H: 100}, CreationIndex: 2, ZOrder: 2},
		},
	}
}

func crit(kind model.RankKind, index int) *model.SelectionCriterion {
	return &model.SelectionCriterion{Kind: kind, Index: index}
}

func TestSelectPicture_ByLeft(t *testing.T) {
	got, err := SelectPicture(threePictures(), crit(model.ByLeft, 2))
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID, "rank 2 ascending by left edge is x=200")
}

func TestSelectPicture_ByTop(t *testing.T) {
	got, err := SelectPicture(threePictures(), crit(model.ByTop, 1))
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID, "top-most picture has y=20")
}

func TestSelectPicture_ByCreation(t *testing.T) {
	got, err := SelectPicture(threePictures(), crit(model.ByCreation, 3))
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)
}

func TestSelectPicture_ByZOrderFrontFirst(t *testing.T) {
	// Rank 1 is the front-most picture (highest z-order).
	got, err := SelectPicture(threePictures(), crit(model.ByZOrder, 1))
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	// -1 resolves to rank 3+(-1)+1 = 3: the back-most picture.
	got, err = SelectPicture(threePictures(), crit(model.ByZOrder, -1))
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestSelectPicture_NegativeIndexEqualsEndRelativePositive(t *testing.T) {
	snap := threePictures()
	count := len(snap.Pictures())

	for _, kind := range []model.RankKind{model.ByCreation, model.ByLeft, model.ByTop, model.ByZOrder} {
		for i := -count; i <= -1; i++ {
			neg, err := SelectPicture(snap, crit(kind, i))
			require.NoError(t, err)
			pos, err := SelectPicture(snap, crit(kind, count+i+1))
			require.NoError(t, err)
			assert.Equal(t, pos.ID, neg.ID, "kind %v index %d", kind, i)
		}
	}
}

func TestSelectPicture_NilCriterionSinglePicture(t *testing.T) {
	snap := model.SlideSnapshot{
		SlideID: "1",
		Shapes: []model.ShapeRecord{
			{ID: "only", Kind: model.ShapePicture},
			{ID: "text", Kind: model.ShapeTextBox, HasText: true},
		},
	}

	got, err := SelectPicture(snap, nil)
	require.NoError(t, err)
	assert.Equal(t, "only", got.ID)
}

func TestSelectPicture_NilCriterionManyPictures(t *testing.T) {
	_, err := SelectPicture(threePictures(), nil)
	assert.ErrorIs(t, err, model.ErrAmbiguousSelection)
}

func TestSelectPicture_NoPictures(t *testing.T) {
	snap := model.SlideSnapshot{
		SlideID: "1",
		Shapes: []model.ShapeRecord{
			{ID: "text", Kind: model.ShapeTextBox, HasText: true},
		},
	}

	_, err := SelectPicture(snap, nil)
	assert.ErrorIs(t, err, model.ErrNoPictureFound)

	_, err = SelectPicture(snap, crit(model.ByLeft, 1))
	assert.ErrorIs(t, err, model.ErrNoPictureFound)
}

func TestSelectPicture_IndexOutOfRange(t *testing.T) {
	for _, index := range []int{4, -4, 10} {
		_, err := SelectPicture(threePictures(), crit(model.ByLeft, index))
		assert.ErrorIs(t, err, model.ErrIndexOutOfRange, "index %d", index)
	}
}

func TestSelectPicture_FilledPlaceholderCounts(t *testing.T) {
	snap := model.SlideSnapshot{
		SlideID: "1",
		Shapes: []model.ShapeRecord{
			{ID: "hosted", Kind: model.ShapePlaceholder, Placeholder: model.PlaceholderPicture,
				HasContent: true, Rect: model.Rect{X: 50}},
			{ID: "free", Kind: model.ShapePicture, Rect: model.Rect{X: 10}},
		},
	}

	got, err := SelectPicture(snap, crit(model.ByLeft, 2))
	require.NoError(t, err)
	assert.Equal(t, "hosted", got.ID)
}

func TestNormalizeRank(t *testing.T) {
	cases := []struct {
		index, count int
		rank         int
		ok           bool
	}{
		{1, 3, 1, true},
		{3, 3, 3, true},
		{-1, 3, 3, true},
		{-3, 3, 1, true},
		{0, 3, 0, false},
		{4, 3, 0, false},
		{-4, 3, 0, false},
		{1, 0, 0, false},
	}

	for _, c := range cases {
		rank, err := normalizeRank(c.index, c.count)
		if c.ok {
			require.NoError(t, err, "index %d count %d", c.index, c.count)
			assert.Equal(t, c.rank, rank, "index %d count %d", c.index, c.count)
		} else {
			assert.ErrorIs(t, err, model.ErrIndexOutOfRange, "index %d count %d", c.index, c.count)
		}
	}
}
