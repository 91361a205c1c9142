package engine

import (
	"fmt"
	"sort"

	"github.com/slidefig/slidefig/internal/model"
)

// SelectPicture resolves a selection criterion to one picture shape on
// the slide.
//
// A nil criterion is allowed only when the slide carries exactly one
// picture. Otherwise the pictures are ordered by the criterion's kind
// and the signed 1-based index picks one: positive counts from the
// front of the ordering, negative from the end.
func SelectPicture(snap model.SlideSnapshot, crit *model.SelectionCriterion) (model.ShapeRecord, error) {
	pics := snap.Pictures()
	if len(pics) == 0 {
		return model.ShapeRecord{}, fmt.Errorf("%w on slide %s", model.ErrNoPictureFound, snap.SlideID)
	}

	if crit == nil {
		if len(pics) > 1 {
			return model.ShapeRecord{}, fmt.Errorf("%w: %d pictures on slide %s and no criterion given",
				model.ErrAmbiguousSelection, len(pics), snap.SlideID)
		}
		return pics[0], nil
	}

	ordered := orderPictures(pics, crit.Kind)
	rank, err := normalizeRank(crit.Index, len(ordered))
	if err != nil {
		return model.ShapeRecord{}, fmt.Errorf("selecting by %s: %w", crit.Kind, err)
	}
	return ordered[rank-1], nil
}

// orderPictures returns the pictures sorted for the given ranking kind.
// The sort is stable, so snapshot (creation) order breaks ties.
func orderPictures(pics []model.ShapeRecord, kind model.RankKind) []model.ShapeRecord {
	ordered := append([]model.ShapeRecord(nil), pics...)
	var less func(i, j int) bool
	switch kind {
	case model.ByLeft:
		less = func(i, j int) bool { return ordered[i].Rect.X < ordered[j].Rect.X }
	case model.ByTop:
		less = func(i, j int) bool { return ordered[i].Rect.Y < ordered[j].Rect.Y }
	case model.ByZOrder:
		// Front-most first: rank 1 is the picture most in front.
		less = func(i, j int) bool { return ordered[i].ZOrder > ordered[j].ZOrder }
	default:
		less = func(i, j int) bool { return ordered[i].CreationIndex < ordered[j].CreationIndex }
	}
	sort.SliceStable(ordered, less)
	return ordered
}

// normalizeRank maps a signed 1-based index onto a rank in [1, count].
// Negative indices count from the end: -1 is the last rank. Zero is
// never valid.
func normalizeRank(index, count int) (int, error) {
	rank := index
	if index < 0 {
		rank = count + index + 1
	}
	if index == 0 || rank < 1 || rank > count {
		return 0, fmt.Errorf("%w: index %d resolves to rank %d of %d", model.ErrIndexOutOfRange, index, rank, count)
	}
	return rank, nil
}
