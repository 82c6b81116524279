package gridfold

import (
	"log/slog"

	"github.com/tsawler/gridfold/compose"
	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
	"github.com/tsawler/gridfold/tables"
)

// Folder provides a fluent interface for detecting, editing, and
// folding a table screenshot. Each configuration method returns a new
// Folder instance, making chains safe to branch and keep for history.
type Folder struct {
	// Source pixels.
	buf *raster.Buffer

	// Grid state: nil until detected or supplied, then carried through
	// edits and folds as an immutable value.
	grid *model.Grid

	// Configuration.
	options foldOptions

	// Warnings accumulated during processing.
	warnings []Warning
}

// clone creates a shallow copy of the Folder with a deep copy of
// options, ensuring immutability of each chain step.
func (f *Folder) clone() *Folder {
	newF := &Folder{
		buf:      f.buf,
		options:  f.options.clone(),
		warnings: append([]Warning(nil), f.warnings...),
	}
	if f.grid != nil {
		g := f.grid.Clone()
		newF.grid = &g
	}
	return newF
}

// warn appends a warning.
func (f *Folder) warn(code, message string) {
	f.warnings = append(f.warnings, Warning{Code: code, Message: message})
}

// Select adds removal selections. Selections may carry negative width
// or height straight from a pointer drag; they are normalized before
// use.
func (f *Folder) Select(selections ...Rect) *Folder {
	newF := f.clone()
	newF.options.selections = append(newF.options.selections, selections...)
	return newF
}

// ClearSelections drops all accumulated selections.
func (f *Folder) ClearSelections() *Folder {
	newF := f.clone()
	newF.options.selections = nil
	return newF
}

// Mode sets which axes Fold removes. The default is Both.
func (f *Folder) Mode(mode FoldMode) *Folder {
	newF := f.clone()
	newF.options.mode = mode
	return newF
}

// Smart toggles content-aware folding. When enabled (the default),
// removal inside a cell prefers invisible whitespace cuts and falls
// back to squishing; when disabled, folds are plain physical cuts.
func (f *Folder) Smart(on bool) *Folder {
	newF := f.clone()
	newF.options.smart = on
	return newF
}

// EraseThreshold sets the pointer distance within which Erase and
// EraseTarget snap to a line. Callers typically divide a screen-space
// constant by the current view scale.
func (f *Folder) EraseThreshold(px float64) *Folder {
	newF := f.clone()
	newF.options.eraseThreshold = px
	return newF
}

// WithGrid substitutes an externally held grid (for example one popped
// from an undo history) for the detected one.
func (f *Folder) WithGrid(grid Grid) *Folder {
	newF := f.clone()
	g := grid.Clone()
	newF.grid = &g
	return newF
}

// Grid returns the current grid, running detection on first use.
// Detection is synchronous; an image without any line-like structure
// yields a border-only grid and a warning, not an error.
func (f *Folder) Grid() (Grid, []Warning, error) {
	if f.buf == nil {
		return Grid{}, f.warnings, ErrNoImage
	}
	if f.grid != nil {
		return f.grid.Clone(), f.warnings, nil
	}

	grid := tables.NewDetector().Detect(f.buf)
	logger().Debug("grid detected",
		slog.Int("horizontal", len(grid.Horizontal)),
		slog.Int("vertical", len(grid.Vertical)))

	warnings := f.warnings
	if len(grid.Horizontal) <= 2 && len(grid.Vertical) <= 2 {
		warnings = append(warnings, Warning{
			Code:    WarnNoStructure,
			Message: "no table structure detected; using border-only grid",
		})
	}
	return grid, warnings, nil
}

// Cells resolves the current grid into actual (possibly merged) cell
// rectangles.
func (f *Folder) Cells() ([]Rect, []Warning, error) {
	grid, warnings, err := f.Grid()
	if err != nil {
		return nil, warnings, err
	}
	cells := tables.ResolveCells(grid, float64(f.buf.Width()), float64(f.buf.Height()))
	return cells, warnings, nil
}

// Erase applies one eraser action at p: the whole nearest line when
// wholeLine is set, otherwise the single lattice unit nearest the
// pointer. The returned bool is false for a miss, in which case the
// returned Folder is f unchanged and nothing should be pushed to
// history.
func (f *Folder) Erase(p Point, wholeLine bool) (*Folder, bool) {
	grid, _, err := f.Grid()
	if err != nil {
		return f, false
	}

	edited, changed := tables.Erase(grid, p, wholeLine, f.options.eraseThreshold)
	if !changed {
		return f, false
	}

	newF := f.clone()
	newF.grid = &edited
	return newF, true
}

// EraseTarget resolves the erase candidate at p without applying it,
// for hover previews. The preview uses the same threshold as Erase.
func (f *Folder) EraseTarget(p Point, wholeLine bool) (tables.EraseTarget, bool) {
	grid, _, err := f.Grid()
	if err != nil {
		return tables.EraseTarget{}, false
	}
	return tables.Target(grid, p, wholeLine, f.options.eraseThreshold)
}

// Result is the output of a fold.
type Result = compose.Result

// Fold removes the selected ranges and returns the new raster together
// with the grid remapped into the new coordinate space. The final
// dimensions equal the original minus the merged selection extents on
// each folded axis, independent of smart mode.
func (f *Folder) Fold() (*Result, []Warning, error) {
	grid, warnings, err := f.Grid()
	if err != nil {
		return nil, warnings, err
	}

	selections := make([]model.Rect, 0, len(f.options.selections))
	for _, sel := range f.options.selections {
		sel = sel.Normalize()
		if sel.IsEmpty() {
			continue
		}
		clamped := sel.Intersection(model.NewRect(0, 0, float64(f.buf.Width()), float64(f.buf.Height())))
		if clamped.Area() < sel.Area() {
			warnings = append(warnings, Warning{
				Code:    WarnSelectionClamped,
				Message: "selection extended past the canvas and was clamped",
			})
		}
		if !clamped.IsEmpty() {
			selections = append(selections, clamped)
		}
	}

	if len(selections) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnEmptySelection,
			Message: "nothing selected; fold is a no-op",
		})
		return &Result{
			Buffer: f.buf,
			Width:  f.buf.Width(),
			Height: f.buf.Height(),
			Grid:   grid,
		}, warnings, nil
	}

	logger().Debug("folding",
		slog.Int("selections", len(selections)),
		slog.String("mode", f.options.mode.String()),
		slog.Bool("smart", f.options.smart))

	result := compose.New().Crop(f.buf, grid, selections, f.options.mode, f.options.smart)
	return result, warnings, nil
}
