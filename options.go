package gridfold

import (
	"github.com/tsawler/gridfold/compose"
	"github.com/tsawler/gridfold/model"
)

// FoldMode selects which axes a fold removes.
type FoldMode = compose.Mode

// Fold modes.
const (
	Both       = compose.ModeBoth
	Horizontal = compose.ModeHorizontal
	Vertical   = compose.ModeVertical
)

// defaultEraseThreshold is the pointer distance (in image pixels)
// within which an eraser action snaps to a line. Hover previews and
// the erase itself derive from this same constant, so the preview
// always matches the action.
const defaultEraseThreshold = 6.0

// foldOptions holds configuration accumulated by the fluent Folder
// methods.
type foldOptions struct {
	mode           FoldMode
	smart          bool
	eraseThreshold float64
	selections     []model.Rect
}

// defaultOptions returns the default fold options.
func defaultOptions() foldOptions {
	return foldOptions{
		mode:           Both,
		smart:          true,
		eraseThreshold: defaultEraseThreshold,
		selections:     nil,
	}
}

// clone creates a deep copy of foldOptions.
func (o foldOptions) clone() foldOptions {
	newOpts := foldOptions{
		mode:           o.mode,
		smart:          o.smart,
		eraseThreshold: o.eraseThreshold,
	}

	if o.selections != nil {
		newOpts.selections = make([]model.Rect, len(o.selections))
		copy(newOpts.selections, o.selections)
	}

	return newOpts
}
