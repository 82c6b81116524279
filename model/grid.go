package model

import "sort"

// Axis identifies the orientation of a grid line.
type Axis int

const (
	// Horizontal lines run left to right; their Pos is a Y coordinate.
	Horizontal Axis = iota
	// Vertical lines run top to bottom; their Pos is an X coordinate.
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// GridLine represents one inferred table division. Pos is the coordinate
// along the line's own axis (Y for a horizontal line, X for a vertical
// line). Start and End bound the span along the perpendicular axis over
// which the line is asserted to exist.
//
// Thickness records the pixel thickness observed during detection. It is
// informational only; no algorithm depends on it. Synthesized border
// lines carry Thickness 0.
type GridLine struct {
	Pos       float64
	Thickness float64
	Start     float64
	End       float64
}

// Covers reports whether the perpendicular coordinate c lies within the
// line's asserted span.
func (l GridLine) Covers(c float64) bool {
	return c >= l.Start && c <= l.End
}

// Length returns the span length of the line.
func (l GridLine) Length() float64 {
	return l.End - l.Start
}

// Grid is the full set of inferred table divisions for one image. Lines
// on each axis are ordered by Pos ascending.
//
// A Grid is treated as an immutable value: the detector creates one per
// image, and the eraser and compositor return transformed copies rather
// than mutating in place. Cells are always derived from the current Grid
// via lattice resolution and are never stored alongside it.
type Grid struct {
	Horizontal []GridLine
	Vertical   []GridLine
}

// Lines returns the lines on the given axis.
func (g Grid) Lines(axis Axis) []GridLine {
	if axis == Horizontal {
		return g.Horizontal
	}
	return g.Vertical
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	return Grid{
		Horizontal: append([]GridLine(nil), g.Horizontal...),
		Vertical:   append([]GridLine(nil), g.Vertical...),
	}
}

// Positions returns the sorted Pos values of all lines on the given axis.
func (g Grid) Positions(axis Axis) []float64 {
	lines := g.Lines(axis)
	positions := make([]float64, len(lines))
	for i, l := range lines {
		positions[i] = l.Pos
	}
	sort.Float64s(positions)
	return positions
}

// SortLines orders lines on both axes by Pos ascending. Lines sharing a
// Pos (segment fragments of one erased line) keep their relative order.
func (g *Grid) SortLines() {
	sort.SliceStable(g.Horizontal, func(i, j int) bool {
		return g.Horizontal[i].Pos < g.Horizontal[j].Pos
	})
	sort.SliceStable(g.Vertical, func(i, j int) bool {
		return g.Vertical[i].Pos < g.Vertical[j].Pos
	})
}

// DedupPositions collapses fresh detections whose Pos values sit within
// minGap of an earlier line on the same axis. Lines must already be
// sorted. Fragments that intentionally share a Pos survive because only
// strictly distinct detections are collapsed (equal Pos is kept).
func DedupPositions(lines []GridLine, minGap float64) []GridLine {
	if len(lines) == 0 {
		return lines
	}
	out := []GridLine{lines[0]}
	for _, l := range lines[1:] {
		prev := out[len(out)-1]
		if l.Pos != prev.Pos && l.Pos-prev.Pos <= minGap {
			continue
		}
		out = append(out, l)
	}
	return out
}
