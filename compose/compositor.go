package compose

import (
	"image"
	"image/draw"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
	"github.com/tsawler/gridfold/seam"
	"github.com/tsawler/gridfold/tables"
)

// Mode selects which axes a fold removes.
type Mode int

const (
	// ModeBoth removes both the row and column extents of selections.
	ModeBoth Mode = iota
	// ModeHorizontal removes row ranges only (the image gets shorter).
	ModeHorizontal
	// ModeVertical removes column ranges only (the image gets narrower).
	ModeVertical
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeHorizontal:
		return "horizontal"
	case ModeVertical:
		return "vertical"
	default:
		return "both"
	}
}

// Result is the output of a crop: a new raster, its dimensions, and the
// grid remapped into the new coordinate space.
type Result struct {
	Buffer *raster.Buffer
	Width  int
	Height int
	Grid   model.Grid
}

// Compositor executes seam plans against a pixel buffer in two
// orthogonal passes, rows first and then columns, and keeps the grid
// consistent with the shrinking coordinate space.
type Compositor struct {
	// Planner computes the per-strip draw operations.
	Planner *seam.Planner
}

// New creates a compositor with a default planner.
func New() *Compositor {
	return &Compositor{Planner: seam.NewPlanner()}
}

// Crop removes the selected ranges from the buffer and returns the new
// raster plus the remapped grid.
//
// Selections are normalized (negative extents flipped), split into
// axis ranges according to mode, clamped to the canvas, and unioned.
// The final dimensions depend only on the requested ranges, never on
// how much of the removal was satisfied by physical cut versus squish:
// finalW = max(1, width - sum of removed column ranges), and likewise
// for the height.
func (c *Compositor) Crop(buf *raster.Buffer, grid model.Grid, selections []model.Rect, mode Mode, smart bool) *Result {
	width := buf.Width()
	height := buf.Height()

	var xRanges, yRanges []seam.Range
	for _, sel := range selections {
		sel = sel.Normalize()
		if mode == ModeHorizontal || mode == ModeBoth {
			yRanges = append(yRanges, clampRange(sel.Top(), sel.Bottom(), float64(height)))
		}
		if mode == ModeVertical || mode == ModeBoth {
			xRanges = append(xRanges, clampRange(sel.Left(), sel.Right(), float64(width)))
		}
	}
	xRanges = roundRanges(seam.MergeRanges(xRanges, 1))
	yRanges = roundRanges(seam.MergeRanges(yRanges, 1))

	finalW := clampDim(width - rangeTotal(xRanges))
	finalH := clampDim(height - rangeTotal(yRanges))

	// Pass 1: row removal, drawn strip by strip between vertical lines.
	inter := buf
	interGrid := grid
	if len(yRanges) > 0 {
		cells := tables.ResolveCells(grid, float64(width), float64(height))
		strips := stripBounds(grid.Vertical, width)
		dst := image.NewRGBA(image.Rect(0, 0, width, finalH))
		for i := 0; i < len(strips)-1; i++ {
			x0, x1 := strips[i], strips[i+1]
			ops := c.Planner.Plan(buf, model.Horizontal, height, yRanges, cells,
				seam.Range{Start: float64(x0), End: float64(x1)}, smart)
			c.drawRows(dst, buf.Image(), ops, x0, x1, finalH)
		}
		inter = raster.FromRGBA(dst)
		interGrid = remapGrid(grid, model.Horizontal, yRanges)
	}

	// Pass 2: column removal over the intermediate raster, with strips
	// derived from the remapped horizontal lines.
	out := inter
	outGrid := interGrid
	if len(xRanges) > 0 {
		cells := tables.ResolveCells(interGrid, float64(width), float64(finalH))
		strips := stripBounds(interGrid.Horizontal, finalH)
		dst := image.NewRGBA(image.Rect(0, 0, finalW, finalH))
		for i := 0; i < len(strips)-1; i++ {
			y0, y1 := strips[i], strips[i+1]
			ops := c.Planner.Plan(inter, model.Vertical, width, xRanges, cells,
				seam.Range{Start: float64(y0), End: float64(y1)}, smart)
			c.drawCols(dst, inter.Image(), ops, y0, y1, finalW)
		}
		out = raster.FromRGBA(dst)
		outGrid = remapGrid(interGrid, model.Vertical, xRanges)
	}

	return &Result{
		Buffer: out,
		Width:  finalW,
		Height: finalH,
		Grid:   outGrid,
	}
}

// drawRows executes one strip's operations for the row pass: each op
// copies a horizontal band of the strip into the destination at the
// accumulating offset, scaling it down when the op carries squish.
func (c *Compositor) drawRows(dst *image.RGBA, src *image.RGBA, ops []seam.Op, x0, x1, limit int) {
	destPos := 0.0
	for _, op := range ops {
		d0 := int(math.Round(destPos))
		d1 := int(math.Round(destPos + op.DestLen))
		destPos += op.DestLen
		if d1 > limit {
			d1 = limit
		}
		if d1 <= d0 {
			continue
		}

		dr := image.Rect(x0, d0, x1, d1)
		if d1-d0 == op.SrcLen {
			draw.Draw(dst, dr, src, image.Pt(x0, op.SrcStart), draw.Src)
			continue
		}
		sr := image.Rect(x0, op.SrcStart, x1, op.SrcStart+op.SrcLen)
		xdraw.ApproxBiLinear.Scale(dst, dr, src, sr, xdraw.Src, nil)
	}
}

// drawCols mirrors drawRows for the column pass.
func (c *Compositor) drawCols(dst *image.RGBA, src *image.RGBA, ops []seam.Op, y0, y1, limit int) {
	destPos := 0.0
	for _, op := range ops {
		d0 := int(math.Round(destPos))
		d1 := int(math.Round(destPos + op.DestLen))
		destPos += op.DestLen
		if d1 > limit {
			d1 = limit
		}
		if d1 <= d0 {
			continue
		}

		dr := image.Rect(d0, y0, d1, y1)
		if d1-d0 == op.SrcLen {
			draw.Draw(dst, dr, src, image.Pt(op.SrcStart, y0), draw.Src)
			continue
		}
		sr := image.Rect(op.SrcStart, y0, op.SrcStart+op.SrcLen, y1)
		xdraw.ApproxBiLinear.Scale(dst, dr, src, sr, xdraw.Src, nil)
	}
}

// remapGrid maps the grid into the coordinate space left after removing
// ranges along the given axis. Lines on that axis whose Pos falls
// strictly inside a removed range ceased to exist and are dropped;
// every other coordinate shifts down by the cumulative removed length
// below it. Perpendicular lines keep their Pos but have their spans
// remapped, and are dropped if the span collapses.
func remapGrid(grid model.Grid, axis model.Axis, removed []seam.Range) model.Grid {
	out := model.Grid{}

	for _, l := range grid.Horizontal {
		if axis == model.Horizontal {
			if insideRange(l.Pos, removed) {
				continue
			}
			l.Pos = mapCoord(l.Pos, removed)
		} else {
			l.Start = mapCoord(l.Start, removed)
			l.End = mapCoord(l.End, removed)
			if l.End-l.Start <= 0 {
				continue
			}
		}
		out.Horizontal = append(out.Horizontal, l)
	}

	for _, l := range grid.Vertical {
		if axis == model.Vertical {
			if insideRange(l.Pos, removed) {
				continue
			}
			l.Pos = mapCoord(l.Pos, removed)
		} else {
			l.Start = mapCoord(l.Start, removed)
			l.End = mapCoord(l.End, removed)
			if l.End-l.Start <= 0 {
				continue
			}
		}
		out.Vertical = append(out.Vertical, l)
	}

	out.SortLines()
	return out
}

// mapCoord shifts a coordinate down by the length of every removed
// range below it, counting partial overlap for coordinates inside a
// range.
func mapCoord(c float64, removed []seam.Range) float64 {
	shift := 0.0
	for _, r := range removed {
		if overlap := math.Min(r.End, c) - r.Start; overlap > 0 {
			shift += overlap
		}
	}
	return c - shift
}

// insideRange reports whether c falls strictly inside any removed range.
func insideRange(c float64, removed []seam.Range) bool {
	for _, r := range removed {
		if c > r.Start && c < r.End {
			return true
		}
	}
	return false
}

// stripBounds converts line positions into integer strip boundaries
// covering [0, limit].
func stripBounds(lines []model.GridLine, limit int) []int {
	bounds := []int{0, limit}
	for _, l := range lines {
		p := int(math.Round(l.Pos))
		if p > 0 && p < limit {
			bounds = append(bounds, p)
		}
	}
	sort.Ints(bounds)

	out := bounds[:1]
	for _, b := range bounds[1:] {
		if b == out[len(out)-1] {
			continue
		}
		out = append(out, b)
	}
	return out
}

// roundRanges snaps ranges to whole pixels so removal totals are
// integral and both passes agree on final dimensions.
func roundRanges(ranges []seam.Range) []seam.Range {
	out := make([]seam.Range, 0, len(ranges))
	for _, r := range ranges {
		r.Start = math.Round(r.Start)
		r.End = math.Round(r.End)
		if r.End > r.Start {
			out = append(out, r)
		}
	}
	return out
}

func rangeTotal(ranges []seam.Range) int {
	total := 0.0
	for _, r := range ranges {
		total += r.Len()
	}
	return int(total)
}

func clampRange(lo, hi, limit float64) seam.Range {
	return seam.Range{
		Start: math.Max(0, lo),
		End:   math.Min(limit, hi),
	}
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
