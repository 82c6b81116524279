package tables

import (
	"math"
	"sort"

	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
)

// Config holds tuning parameters for grid detection.
type Config struct {
	// EdgeThreshold is the minimum luminance delta (R+G+B, 0-765)
	// between a pixel and its axis neighbor for the pixel to count as
	// an edge.
	EdgeThreshold int

	// ClusterTolerance is the maximum Pos difference (in pixels) for
	// two detected segments to be grouped into one line candidate.
	ClusterTolerance float64

	// MergeGap is the maximum gap (in pixels) between sub-segments of
	// one cluster before they are merged into a single run.
	MergeGap float64

	// BorderSnap is the distance (in pixels) within which a detected
	// line is treated as the image border, suppressing synthesis of a
	// separate border line.
	BorderSnap float64

	// MinSegmentFloor and MinSegmentFrac together set the minimum run
	// length for a contrast run to qualify as a segment:
	// max(MinSegmentFloor, MinSegmentFrac * min(width, height)).
	MinSegmentFloor int
	MinSegmentFrac  float64
}

// DefaultConfig returns the default detection configuration.
func DefaultConfig() Config {
	return Config{
		EdgeThreshold:    40,
		ClusterTolerance: 3.0,
		MergeGap:         4.0,
		BorderSnap:       5.0,
		MinSegmentFloor:  16,
		MinSegmentFrac:   0.01,
	}
}

// Detector infers a table grid from raw pixels. It scans the image for
// line-like contrast runs, clusters them into line candidates, and
// projects each candidate to a full-span cutting plane.
type Detector struct {
	config Config
}

// NewDetector creates a grid detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// Configure sets the detector configuration.
func (d *Detector) Configure(config Config) {
	d.config = config
}

// segment is a contiguous run of edge pixels along one scan line. It is
// consumed entirely inside the detector.
type segment struct {
	pos   int
	start int
	end   int
}

// Detect scans the buffer and returns the inferred grid. An image with
// no qualifying contrast runs yields a grid containing only the four
// border lines (a single full-image cell); that is a valid result, not
// an error.
func (d *Detector) Detect(buf *raster.Buffer) model.Grid {
	width := buf.Width()
	height := buf.Height()

	minLen := d.config.MinSegmentFloor
	if frac := int(d.config.MinSegmentFrac * float64(min(width, height))); frac > minLen {
		minLen = frac
	}

	hSegs := d.scanRows(buf, minLen)
	vSegs := d.scanCols(buf, minLen)

	grid := model.Grid{
		Horizontal: d.projectLines(d.clusterSegments(hSegs), float64(width), float64(height)),
		Vertical:   d.projectLines(d.clusterSegments(vSegs), float64(height), float64(width)),
	}
	grid.SortLines()
	grid.Horizontal = model.DedupPositions(grid.Horizontal, 1)
	grid.Vertical = model.DedupPositions(grid.Vertical, 1)
	return grid
}

// scanRows emits horizontal segments: for every interior row, runs of
// pixels contrasting with the row above or below.
func (d *Detector) scanRows(buf *raster.Buffer, minLen int) []segment {
	var segs []segment
	width := buf.Width()
	height := buf.Height()

	for y := 1; y < height-1; y++ {
		runStart := -1
		for x := 0; x < width; x++ {
			lum := buf.Lum(x, y)
			edge := abs(lum-buf.Lum(x, y-1)) > d.config.EdgeThreshold ||
				abs(lum-buf.Lum(x, y+1)) > d.config.EdgeThreshold
			if edge {
				if runStart < 0 {
					runStart = x
				}
				continue
			}
			if runStart >= 0 {
				if x-runStart > minLen {
					segs = append(segs, segment{pos: y, start: runStart, end: x})
				}
				runStart = -1
			}
		}
		if runStart >= 0 && width-runStart > minLen {
			segs = append(segs, segment{pos: y, start: runStart, end: width})
		}
	}
	return segs
}

// scanCols mirrors scanRows column-by-column using left/right neighbor
// comparison, emitting vertical segments.
func (d *Detector) scanCols(buf *raster.Buffer, minLen int) []segment {
	var segs []segment
	width := buf.Width()
	height := buf.Height()

	for x := 1; x < width-1; x++ {
		runStart := -1
		for y := 0; y < height; y++ {
			lum := buf.Lum(x, y)
			edge := abs(lum-buf.Lum(x-1, y)) > d.config.EdgeThreshold ||
				abs(lum-buf.Lum(x+1, y)) > d.config.EdgeThreshold
			if edge {
				if runStart < 0 {
					runStart = y
				}
				continue
			}
			if runStart >= 0 {
				if y-runStart > minLen {
					segs = append(segs, segment{pos: x, start: runStart, end: y})
				}
				runStart = -1
			}
		}
		if runStart >= 0 && height-runStart > minLen {
			segs = append(segs, segment{pos: x, start: runStart, end: height})
		}
	}
	return segs
}

// lineCandidate is a clustered group of segments sharing one position.
type lineCandidate struct {
	pos       float64
	thickness float64
}

// clusterSegments groups segments whose positions sit within the
// cluster tolerance, assigning each cluster the rounded mean position.
// Within a cluster, sub-segments separated by at most MergeGap are
// merged; the merge smooths anti-aliased and broken line evidence.
func (d *Detector) clusterSegments(segs []segment) []lineCandidate {
	if len(segs) == 0 {
		return nil
	}

	sort.Slice(segs, func(i, j int) bool {
		if segs[i].pos != segs[j].pos {
			return segs[i].pos < segs[j].pos
		}
		return segs[i].start < segs[j].start
	})

	var candidates []lineCandidate
	clusterStart := 0
	for i := 1; i <= len(segs); i++ {
		if i < len(segs) && float64(segs[i].pos-segs[i-1].pos) <= d.config.ClusterTolerance {
			continue
		}
		candidates = append(candidates, d.finalizeCluster(segs[clusterStart:i]))
		clusterStart = i
	}
	return candidates
}

// finalizeCluster merges a cluster's sub-segments and computes its
// representative position and thickness.
func (d *Detector) finalizeCluster(cluster []segment) lineCandidate {
	sum := 0
	minPos, maxPos := cluster[0].pos, cluster[0].pos
	for _, s := range cluster {
		sum += s.pos
		if s.pos < minPos {
			minPos = s.pos
		}
		if s.pos > maxPos {
			maxPos = s.pos
		}
	}

	// Merge sub-segments whose gaps are within MergeGap. The merged
	// runs are only evidence; projection discards the local extents.
	byStart := append([]segment(nil), cluster...)
	sort.Slice(byStart, func(i, j int) bool { return byStart[i].start < byStart[j].start })
	merged := make([]segment, 0, len(byStart))
	for _, s := range byStart {
		if n := len(merged); n > 0 && float64(s.start-merged[n-1].end) <= d.config.MergeGap {
			if s.end > merged[n-1].end {
				merged[n-1].end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	return lineCandidate{
		pos:       math.Round(float64(sum) / float64(len(cluster))),
		thickness: float64(maxPos - minPos + 1),
	}
}

// projectLines turns clustered candidates into full-span grid lines and
// synthesizes border lines at 0 and limit when no detected line sits
// within BorderSnap of the edge. Treating detected segments as evidence
// for an infinite cutting plane keeps the lattice rectangular even when
// a line was only partially drawn.
func (d *Detector) projectLines(candidates []lineCandidate, span, limit float64) []model.GridLine {
	lines := make([]model.GridLine, 0, len(candidates)+2)
	nearStart, nearEnd := false, false
	for _, c := range candidates {
		lines = append(lines, model.GridLine{
			Pos:       c.pos,
			Thickness: c.thickness,
			Start:     0,
			End:       span,
		})
		if c.pos <= d.config.BorderSnap {
			nearStart = true
		}
		if c.pos >= limit-d.config.BorderSnap {
			nearEnd = true
		}
	}
	if !nearStart {
		lines = append(lines, model.GridLine{Pos: 0, Start: 0, End: span})
	}
	if !nearEnd {
		lines = append(lines, model.GridLine{Pos: limit, Start: 0, End: span})
	}
	return lines
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
