package tables

import (
	"math"
	"sort"

	"github.com/tsawler/gridfold/model"
)

// wallTolerance is the maximum distance between a line's Pos and a
// lattice boundary for the line to act as a wall on that boundary.
const wallTolerance = 2.0

// minWallOverlap is the minimum overlap between a line's span and a
// shared block edge for the wall to count.
const minWallOverlap = 1.0

// ResolveCells computes the actual (possibly merged) cell rectangles for
// a grid over a canvas of the given size.
//
// The union of all line positions on each axis partitions the canvas
// into an atomic lattice of rectangular blocks. Adjacent blocks whose
// shared boundary carries no asserted line span are flood-filled into
// one component; the bounding box of each component is a resolved cell.
// A table cell spanning two nominal grid rows because its separating
// line was erased therefore resolves to one tall Rect.
//
// No ordering of the returned cells is guaranteed.
func ResolveCells(grid model.Grid, width, height float64) []model.Rect {
	xs := latticePositions(grid.Vertical, width)
	ys := latticePositions(grid.Horizontal, height)

	cols := len(xs) - 1
	rows := len(ys) - 1
	if cols < 1 || rows < 1 {
		return nil
	}

	// BFS over atomic blocks, indexed row-major.
	total := rows * cols
	seen := make([]bool, total)
	var cells []model.Rect

	for start := 0; start < total; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}

		minR, maxR := start/cols, start/cols
		minC, maxC := start%cols, start%cols

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			r, c := u/cols, u%cols
			if r < minR {
				minR = r
			}
			if r > maxR {
				maxR = r
			}
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}

			// Left neighbor: wall on the shared vertical boundary xs[c].
			if c > 0 && !seen[u-1] && !hasWall(grid.Vertical, xs[c], ys[r], ys[r+1]) {
				seen[u-1] = true
				queue = append(queue, u-1)
			}
			// Right neighbor.
			if c < cols-1 && !seen[u+1] && !hasWall(grid.Vertical, xs[c+1], ys[r], ys[r+1]) {
				seen[u+1] = true
				queue = append(queue, u+1)
			}
			// Up neighbor: wall on the shared horizontal boundary ys[r].
			if r > 0 && !seen[u-cols] && !hasWall(grid.Horizontal, ys[r], xs[c], xs[c+1]) {
				seen[u-cols] = true
				queue = append(queue, u-cols)
			}
			// Down neighbor.
			if r < rows-1 && !seen[u+cols] && !hasWall(grid.Horizontal, ys[r+1], xs[c], xs[c+1]) {
				seen[u+cols] = true
				queue = append(queue, u+cols)
			}
		}

		cells = append(cells, model.Rect{
			X:      xs[minC],
			Y:      ys[minR],
			Width:  xs[maxC+1] - xs[minC],
			Height: ys[maxR+1] - ys[minR],
		})
	}

	return cells
}

// hasWall reports whether some line asserts a wall on the shared
// boundary at coord, over the edge running from edgeStart to edgeEnd.
func hasWall(lines []model.GridLine, coord, edgeStart, edgeEnd float64) bool {
	for _, l := range lines {
		if math.Abs(l.Pos-coord) > wallTolerance {
			continue
		}
		overlap := math.Min(l.End, edgeEnd) - math.Max(l.Start, edgeStart)
		if overlap > minWallOverlap {
			return true
		}
	}
	return false
}

// latticePositions builds the sorted union of line positions plus the
// canvas bounds, deduplicated to a minimum 1px gap.
func latticePositions(lines []model.GridLine, limit float64) []float64 {
	positions := make([]float64, 0, len(lines)+2)
	positions = append(positions, 0, limit)
	for _, l := range lines {
		if l.Pos > 0 && l.Pos < limit {
			positions = append(positions, l.Pos)
		}
	}
	sort.Float64s(positions)

	out := positions[:1]
	for _, p := range positions[1:] {
		if p-out[len(out)-1] <= 1 {
			continue
		}
		out = append(out, p)
	}
	// Keep the far canvas bound even when a line sat within 1px of it.
	if out[len(out)-1] < limit {
		out[len(out)-1] = limit
	}
	return out
}
