package seam

import (
	"math"
	"sort"

	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
)

// Range is a half-open coordinate interval [Start, End) along one axis.
type Range struct {
	Start float64
	End   float64
}

// Len returns the interval length, never negative.
func (r Range) Len() float64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// MergeRanges unions overlapping intervals, also fusing intervals whose
// gap is at most gap. Empty intervals are dropped.
func MergeRanges(ranges []Range, gap float64) []Range {
	var live []Range
	for _, r := range ranges {
		if r.Len() > 0 {
			live = append(live, r)
		}
	}
	if len(live) == 0 {
		return nil
	}

	sort.Slice(live, func(i, j int) bool { return live[i].Start < live[j].Start })

	merged := []Range{live[0]}
	for _, r := range live[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+gap {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Op is one draw operation: copy SrcLen pixels of the axis starting at
// SrcStart into DestLen destination pixels. DestLen equals SrcLen for a
// plain keep and is smaller for a squish; physically cut pixels appear
// in no Op at all.
type Op struct {
	SrcStart int
	SrcLen   int
	DestLen  float64
}

// Planner computes keep/cut/squish draw operations for one strip of one
// axis. Physical cuts are preferred wherever the pixels are visually
// safe to remove; whatever cannot be cut safely is recovered by
// uniformly squishing the remaining pixels of the owning cell, so the
// total removed length always equals the requested amount.
type Planner struct {
	// SafeEnergy is the energy below which a block of pixels is
	// considered safe to cut physically.
	SafeEnergy float64

	// BlockSize is the width (along the planning axis) of the blocks
	// energy is scored over.
	BlockSize int

	// SampleStride is the cross-axis sampling stride for energy
	// scoring.
	SampleStride int
}

// NewPlanner creates a planner with default tuning.
func NewPlanner() *Planner {
	return &Planner{
		SafeEnergy:   5.0,
		BlockSize:    2,
		SampleStride: 2,
	}
}

// Plan computes the draw operations for one strip.
//
// axis selects the removal coordinate: model.Horizontal plans row
// removal (coordinates are Y values), model.Vertical plans column
// removal (coordinates are X values). axisLen is the source length of
// that axis, removals the merged intervals to remove, cells the
// resolved cell rectangles for the current grid, and strip the
// cross-axis interval this plan covers.
//
// When smart is false the removals become plain physical cuts. When
// smart is true, removal pixels inside a cell become a per-cell quota
// satisfied first by cutting the cell's lowest-energy pixels and then,
// for any remainder, by squishing the cell's surviving pixels.
func (p *Planner) Plan(buf *raster.Buffer, axis model.Axis, axisLen int, removals []Range, cells []model.Rect, strip Range, smart bool) []Op {
	if axisLen <= 0 {
		return nil
	}

	cut := make([]bool, axisLen)
	scale := map[int]float64{}
	owner := make([]int, axisLen)
	for i := range owner {
		owner[i] = -1
	}

	if smart {
		p.planSmart(buf, axis, axisLen, removals, cells, strip, cut, owner, scale)
	} else {
		for _, r := range removals {
			for a := clampIndex(r.Start, axisLen); a < clampIndex(r.End, axisLen); a++ {
				cut[a] = true
			}
		}
	}

	return emitOps(cut, owner, scale, axisLen)
}

// planSmart fills cut, owner, and scale for smart mode.
func (p *Planner) planSmart(buf *raster.Buffer, axis model.Axis, axisLen int, removals []Range, cells []model.Rect, strip Range, cut []bool, owner []int, scale map[int]float64) {
	// Cells intersecting this strip claim their axis extent. Only the
	// strip's own slice of a cell matters: a cell that spans several
	// strips is squished independently per strip.
	for i, cell := range cells {
		lo, hi := cellCross(axis, cell)
		if math.Min(hi, strip.End)-math.Max(lo, strip.Start) <= 0 {
			continue
		}
		a0, a1 := cellExtent(axis, cell, axisLen)
		for a := a0; a < a1; a++ {
			owner[a] = i
		}
	}

	// Partition requested removal pixels into gap cuts and per-cell
	// quotas.
	quota := map[int]int{}
	for _, r := range removals {
		for a := clampIndex(r.Start, axisLen); a < clampIndex(r.End, axisLen); a++ {
			if owner[a] >= 0 {
				quota[owner[a]]++
			} else {
				cut[a] = true
			}
		}
	}

	for i, need := range quota {
		if need <= 0 {
			continue
		}
		cell := cells[i]
		a0, a1 := cellExtent(axis, cell, axisLen)
		crossLo := math.Max(cellCrossLo(axis, cell), strip.Start)
		crossHi := math.Min(cellCrossHi(axis, cell), strip.End)

		safe := p.safePixels(buf, axis, a0, a1, crossLo, crossHi)

		// Greedily cut the largest safe runs first; a partial take is
		// centered in its run so margins near content survive.
		for _, run := range safeRuns(safe, cut, a0) {
			if need == 0 {
				break
			}
			take := run.length
			if take > need {
				take = need
			}
			start := run.start + (run.length-take)/2
			for a := start; a < start+take; a++ {
				cut[a] = true
			}
			need -= take
		}

		// Whatever is left becomes squish debt for this cell.
		remaining := 0
		for a := a0; a < a1; a++ {
			if !cut[a] {
				remaining++
			}
		}
		if need > 0 && remaining > 0 {
			scale[i] = math.Max(0, float64(remaining-need)) / float64(remaining)
		}
	}
}

// run is a contiguous span of cuttable pixels.
type run struct {
	start  int
	length int
}

// safeRuns groups contiguous safe, not-yet-cut pixels into runs sorted
// by length descending.
func safeRuns(safe []bool, cut []bool, a0 int) []run {
	var runs []run
	start := -1
	for i := 0; i <= len(safe); i++ {
		ok := i < len(safe) && safe[i] && !cut[a0+i]
		if ok {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, run{start: a0 + start, length: i - start})
			start = -1
		}
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].length > runs[j].length })
	return runs
}

// emitOps scans the full axis range and converts non-cut runs into draw
// operations. A run is split wherever the owning cell changes so that
// differing scale factors never bleed across cells.
func emitOps(cut []bool, owner []int, scale map[int]float64, axisLen int) []Op {
	var ops []Op
	a := 0
	for a < axisLen {
		if cut[a] {
			a++
			continue
		}
		start := a
		own := owner[a]
		for a < axisLen && !cut[a] && owner[a] == own {
			a++
		}
		srcLen := a - start
		s := 1.0
		if v, ok := scale[own]; ok {
			s = v
		}
		ops = append(ops, Op{SrcStart: start, SrcLen: srcLen, DestLen: float64(srcLen) * s})
	}
	return ops
}

// cellExtent returns the cell's pixel extent along the planning axis,
// clamped to the buffer.
func cellExtent(axis model.Axis, cell model.Rect, axisLen int) (int, int) {
	var lo, hi float64
	if axis == model.Horizontal {
		lo, hi = cell.Top(), cell.Bottom()
	} else {
		lo, hi = cell.Left(), cell.Right()
	}
	return clampIndex(lo, axisLen), clampIndex(hi, axisLen)
}

func cellCross(axis model.Axis, cell model.Rect) (float64, float64) {
	return cellCrossLo(axis, cell), cellCrossHi(axis, cell)
}

func cellCrossLo(axis model.Axis, cell model.Rect) float64 {
	if axis == model.Horizontal {
		return cell.Left()
	}
	return cell.Top()
}

func cellCrossHi(axis model.Axis, cell model.Rect) float64 {
	if axis == model.Horizontal {
		return cell.Right()
	}
	return cell.Bottom()
}

func clampIndex(v float64, limit int) int {
	i := int(math.Round(v))
	if i < 0 {
		return 0
	}
	if i > limit {
		return limit
	}
	return i
}
