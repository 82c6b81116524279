// Package gridfold removes blank rows and columns from screenshots of
// tables by folding the image together, preserving the visual grid and
// avoiding cuts through cell content.
//
// Basic usage:
//
//	f, err := gridfold.Decode(file)
//	if err != nil {
//	    // handle error
//	}
//	result, warnings, err := f.
//	    Select(gridfold.Rect{X: 0, Y: 40, Width: 300, Height: 20}).
//	    Mode(gridfold.Horizontal).
//	    Fold()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gridfold.FormatWarnings(warnings))
//	}
//
// The detected grid can be edited before folding:
//
//	f, changed := f.Erase(gridfold.Point{X: 75, Y: 50}, false)
//
// For advanced use cases the lower-level tables, seam, and compose
// packages are also available.
package gridfold

import (
	"errors"
	"io"
	"strings"

	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
)

// Re-exported model types, so common use never needs a model import.
type (
	// Point is a 2D point in image pixel space.
	Point = model.Point
	// Rect is a rectangle in image pixel space.
	Rect = model.Rect
	// Grid is the set of inferred table divisions for one image.
	Grid = model.Grid
	// GridLine is one inferred table division.
	GridLine = model.GridLine
)

// ErrNoImage is returned by terminal operations on a Folder that has no
// source pixels.
var ErrNoImage = errors.New("gridfold: no source image")

// Warning represents a non-fatal issue encountered during processing.
// Warnings never stop an operation; they describe normal-but-notable
// outcomes such as a selection clamped to the canvas.
type Warning struct {
	// Code is a stable machine-readable identifier.
	Code string
	// Message is a human-readable description.
	Message string
}

// Warning codes.
const (
	WarnNoStructure      = "no-structure"
	WarnSelectionClamped = "selection-clamped"
	WarnEmptySelection   = "empty-selection"
)

// FormatWarnings renders warnings as a single semicolon-separated
// string for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Message
	}
	return strings.Join(parts, "; ")
}

// Decode reads an encoded image (PNG, JPEG, GIF, BMP, TIFF, or WebP)
// from r and returns a Folder for fluent configuration. Decoding is the
// only I/O this library performs; everything after it is synchronous
// CPU work.
func Decode(r io.Reader) (*Folder, error) {
	buf, err := raster.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromBuffer(buf), nil
}

// FromBuffer creates a Folder over an already-captured pixel buffer.
func FromBuffer(buf *raster.Buffer) *Folder {
	return &Folder{
		buf:     buf,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := gridfold.Must(gridfold.Decode(file))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustFold is a helper that wraps a terminal operation and panics if
// the error is non-nil, discarding warnings.
//
// Example:
//
//	result := gridfold.MustFold(f.Fold())
func MustFold[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
