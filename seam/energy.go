package seam

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
)

// safePixels scores the cell's axis extent [a0, a1) in BlockSize-wide
// blocks and reports, per pixel, whether its block is safe to cut.
//
// A block's energy is the mean absolute channel difference between
// axis-adjacent pixel pairs, sampled across the cross interval
// [crossLo, crossHi) at SampleStride. Blank whitespace scores near
// zero; any text or rule crossing the block drives the mean above
// SafeEnergy and protects the whole block.
func (p *Planner) safePixels(buf *raster.Buffer, axis model.Axis, a0, a1 int, crossLo, crossHi float64) []bool {
	if a1 <= a0 {
		return nil
	}
	safe := make([]bool, a1-a0)

	c0 := int(math.Ceil(crossLo))
	c1 := int(math.Floor(crossHi))

	for b0 := a0; b0 < a1; b0 += p.BlockSize {
		b1 := b0 + p.BlockSize
		if b1 > a1 {
			b1 = a1
		}

		var diffs []float64
		for c := c0; c < c1; c += p.SampleStride {
			for a := b0; a < b1; a++ {
				if a+1 >= a1 {
					break
				}
				diffs = append(diffs, channelDiff(buf, axis, a, c))
			}
		}

		blockSafe := len(diffs) == 0 || stat.Mean(diffs, nil) < p.SafeEnergy
		for a := b0; a < b1; a++ {
			safe[a-a0] = blockSafe
		}
	}
	return safe
}

// channelDiff returns |dR|+|dG|+|dB| between the pixel at axis
// coordinate a / cross coordinate c and its axis successor.
func channelDiff(buf *raster.Buffer, axis model.Axis, a, c int) float64 {
	var x0, y0, x1, y1 int
	if axis == model.Horizontal {
		x0, y0 = c, a
		x1, y1 = c, a+1
	} else {
		x0, y0 = a, c
		x1, y1 = a+1, c
	}
	r0, g0, b0 := buf.RGB(x0, y0)
	r1, g1, b1 := buf.RGB(x1, y1)
	return math.Abs(float64(r0)-float64(r1)) +
		math.Abs(float64(g0)-float64(g1)) +
		math.Abs(float64(b0)-float64(b1))
}
