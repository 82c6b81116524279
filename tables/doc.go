// Package tables provides structural analysis of table screenshots:
// grid detection from raw pixels, resolution of the grid into actual
// (possibly merged) cells, and eraser edits to the grid.
//
// # Detection
//
// The [Detector] scans a pixel buffer for line-like contrast runs using
// a multi-step algorithm:
//
//  1. Per-row and per-column edge scans against axis neighbors
//  2. Clustering of nearby runs into line candidates
//  3. Projection of each candidate to a full-span cutting plane
//  4. Border synthesis when no detected line hugs the image edge
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.EdgeThreshold = 60
//	detector.Configure(config)
//
// # Cell Resolution
//
// [ResolveCells] flood-fills the atomic lattice formed by all line
// positions, merging adjacent blocks wherever no line span asserts a
// wall between them. Cells are always derived from the current grid on
// demand; they are never stored as first-class state.
//
// # Erasing
//
// [Erase] applies one eraser action (a whole line, or the single
// lattice unit nearest the pointer) and returns a new grid. [Target]
// resolves the same candidate without applying it, for hover previews.
package tables
