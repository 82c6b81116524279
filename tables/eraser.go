package tables

import (
	"math"
	"sort"

	"github.com/tsawler/gridfold/model"
)

// EraseTarget identifies the line (or line segment) nearest an eraser
// pointer position. It is computed fresh per pointer move and never
// persisted.
type EraseTarget struct {
	Axis      model.Axis
	LineIndex int
	// Start and End bound the span that an erase at this target would
	// remove: one lattice unit in segment mode, the whole line span in
	// whole-line mode or when no perpendicular line crosses.
	Start float64
	End   float64
	// WholeLine reports whether the erase would remove the entire line.
	WholeLine bool
}

// Target resolves the erase candidate for a pointer position without
// applying it, for hover previews. The same threshold governs both the
// preview and the erase itself, so what the preview highlights is
// exactly what Erase removes.
//
// The second return value is false when no line is within threshold.
func Target(grid model.Grid, p model.Point, wholeLine bool, threshold float64) (EraseTarget, bool) {
	axis, idx, ok := nearestLine(grid, p, threshold)
	if !ok {
		return EraseTarget{}, false
	}

	line := grid.Lines(axis)[idx]
	target := EraseTarget{Axis: axis, LineIndex: idx, Start: line.Start, End: line.End, WholeLine: true}
	if wholeLine {
		return target, true
	}

	cursor := crossCoord(axis, p)
	s, e := bracket(grid, axis, line, cursor)
	target.Start = s
	target.End = e
	target.WholeLine = s <= line.Start && e >= line.End
	return target, true
}

// Erase applies a single eraser action at p. In whole-line mode the
// nearest qualifying line is removed entirely; in segment mode only the
// lattice unit nearest the cursor is removed, splitting the line into
// remainders on either side. A line with no perpendicular crossings is
// removed entirely in either mode.
//
// The returned bool is false when no line lies within threshold; the
// grid is then returned unchanged so callers can distinguish a real
// edit (push to history) from a hover miss.
func Erase(grid model.Grid, p model.Point, wholeLine bool, threshold float64) (model.Grid, bool) {
	axis, idx, ok := nearestLine(grid, p, threshold)
	if !ok {
		return grid, false
	}

	out := grid.Clone()
	lines := out.Lines(axis)
	line := lines[idx]
	remaining := append(lines[:idx:idx], lines[idx+1:]...)

	if !wholeLine {
		s, e := bracket(grid, axis, line, crossCoord(axis, p))
		if s > line.Start+1 {
			left := line
			left.End = s
			remaining = append(remaining, left)
		}
		if e < line.End-1 {
			right := line
			right.Start = e
			remaining = append(remaining, right)
		}
	}

	sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].Pos < remaining[j].Pos })
	if axis == model.Horizontal {
		out.Horizontal = remaining
	} else {
		out.Vertical = remaining
	}
	return out, true
}

// nearestLine finds the erase-eligible line closest to p across both
// axes. A line is eligible when its span contains p's cross-axis
// coordinate and its Pos is within threshold of p's main-axis
// coordinate; ties break by minimum distance over both axes combined.
func nearestLine(grid model.Grid, p model.Point, threshold float64) (model.Axis, int, bool) {
	bestAxis := model.Horizontal
	bestIdx := -1
	bestDist := threshold

	for _, axis := range []model.Axis{model.Horizontal, model.Vertical} {
		cross := crossCoord(axis, p)
		main := mainCoord(axis, p)
		for i, l := range grid.Lines(axis) {
			if !l.Covers(cross) {
				continue
			}
			if d := math.Abs(l.Pos - main); d < bestDist {
				bestDist = d
				bestAxis = axis
				bestIdx = i
			}
		}
	}

	return bestAxis, bestIdx, bestIdx >= 0
}

// bracket finds the lattice unit [s, e] of line around the cursor's
// cross-axis coordinate: s is the largest perpendicular crossing at or
// below the cursor (or the line's own start), e the smallest crossing
// above it (or the line's own end). Only perpendicular lines whose span
// covers this line's Pos count as crossings.
func bracket(grid model.Grid, axis model.Axis, line model.GridLine, cursor float64) (s, e float64) {
	var crossings []float64
	for _, perp := range grid.Lines(perpendicular(axis)) {
		if perp.Covers(line.Pos) {
			crossings = append(crossings, perp.Pos)
		}
	}
	sort.Float64s(crossings)

	s, e = line.Start, line.End
	for _, c := range crossings {
		if c <= cursor && c > s {
			s = c
		}
		if c > cursor && c < e {
			e = c
			break
		}
	}
	return s, e
}

func perpendicular(axis model.Axis) model.Axis {
	if axis == model.Horizontal {
		return model.Vertical
	}
	return model.Horizontal
}

// crossCoord returns p's coordinate along a line's span axis.
func crossCoord(axis model.Axis, p model.Point) float64 {
	if axis == model.Horizontal {
		return p.X
	}
	return p.Y
}

// mainCoord returns p's coordinate along a line's own axis.
func mainCoord(axis model.Axis, p model.Point) float64 {
	if axis == model.Horizontal {
		return p.Y
	}
	return p.X
}
