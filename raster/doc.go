// Package raster provides the pixel buffer underlying all structural
// analysis and compositing.
//
// [Buffer] is an immutable row-major RGBA view over a decoded image.
// [Decode] accepts PNG, JPEG, GIF, BMP, TIFF, and WebP input and is the
// only suspension point in the library: once a Buffer exists, every
// downstream operation is synchronous CPU work.
package raster
