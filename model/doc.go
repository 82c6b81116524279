// Package model provides the intermediate representation (IR) for table
// structure inferred from screenshots.
//
// This package defines the user-facing data structures that detection,
// editing, and compositing operations produce and consume, making them
// the primary vocabulary of the library.
//
// # Grid Structure
//
// The [Grid] type holds the inferred table divisions for one image as
// two ordered slices of [GridLine], one per [Axis]. A line is stored as
// a cutting plane: a position along its own axis plus an asserted span
// along the perpendicular axis. Detected lines are projected to the
// full image span; a line shortened by the eraser keeps its position
// but loses part of its span.
//
// A Grid is a value. Every operation that changes it returns a new
// Grid, so callers can hold historical copies for undo without any
// defensive copying discipline.
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [Rect] - rectangle with intersection, union, and normalization
//   - [Point] - 2D point with distance calculation
//
// All coordinates are in image pixel space with the origin at the
// top-left corner and Y growing downward.
package model
