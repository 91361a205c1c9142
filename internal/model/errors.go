package model

import (
	"errors"
	"fmt"
)

// Planning failures. All are reported to the caller immediately with
// enough context (criterion, index, count) to self-diagnose; the
// planner never retries and never masks a collaborator failure.
var (
	// ErrInvalidBoundingBox: the box spec is neither four numbers nor a
	// known preset name.
	ErrInvalidBoundingBox = errors.New("invalid bounding box")

	// ErrPresetNotFound: no registered anchor matches the preset name
	// after stripping known size and modifier tokens.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrAmbiguousSelection: several selection criteria were supplied at
	// once, or none were and more than one picture is on the slide.
	ErrAmbiguousSelection = errors.New("ambiguous picture selection")

	// ErrIndexOutOfRange: the resolved rank falls outside [1, count].
	ErrIndexOutOfRange = errors.New("picture index out of range")

	// ErrNoPictureFound: replacement was requested on a slide with no
	// picture shapes.
	ErrNoPictureFound = errors.New("no picture found")

	// ErrSlideNotFound: the requested slide does not exist. Surfaced by
	// the snapshot collaborator and passed through unchanged.
	ErrSlideNotFound = errors.New("slide not found")

	// ErrShapeNotFound: a plan referred to a shape ID that is no longer
	// on the slide. Usually means the presentation changed between the
	// snapshot and the plan's execution.
	ErrShapeNotFound = errors.New("shape not found")
)

// wrapf annotates a sentinel error with formatted context.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
