// Package seam plans content-aware removal of pixel ranges from one
// axis of an image.
//
// Given the intervals a user asked to remove, the resolved table cells,
// and one cross-axis strip, [Planner.Plan] produces a sequence of [Op]
// draw operations. Each requested removal pixel is accounted for
// exactly once: as an immediate physical cut outside any cell, as a
// low-energy physical cut inside its cell, or as squish debt that
// uniformly scales down the cell's surviving pixels. The total length
// removed therefore always equals the total length requested, which is
// what makes final image dimensions deterministic regardless of image
// content.
//
// Strips and cells are planned independently over disjoint coordinate
// ranges; no execution order between them affects the result.
package seam
