package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	// Register decoders beyond the stdlib PNG/JPEG/GIF set so Decode
	// accepts the formats screenshots commonly arrive in.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("raster: image has zero width or height")

// Buffer is a read-only view over a decoded image's RGBA samples.
//
// A Buffer is captured once from a decoded image and never mutated in
// place; operations that change pixels produce new Buffers. The pixel
// data is row-major RGBA, 4 bytes per pixel.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// New creates an all-transparent buffer with the given dimensions.
func New(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Decode reads and decodes an encoded image from r and captures it as a
// Buffer. PNG, JPEG, GIF, BMP, TIFF, and WebP are supported.
func Decode(r io.Reader) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %w", err)
	}
	return FromImage(img)
}

// FromImage captures an image as a Buffer, converting to RGBA.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == 4*width {
		pix := make([]uint8, len(rgba.Pix))
		copy(pix, rgba.Pix)
		return &Buffer{width: width, height: height, pix: pix}, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{width: width, height: height, pix: rgba.Pix}, nil
}

// FromRGBA adopts an *image.RGBA as a Buffer without copying when the
// image is origin-anchored with a tight stride, copying otherwise. The
// caller must not write to the image afterward.
func FromRGBA(img *image.RGBA) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if bounds.Min == (image.Point{}) && img.Stride == 4*width {
		return &Buffer{width: width, height: height, pix: img.Pix}
	}
	b, _ := FromImage(img)
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Pix returns the raw pixel data (row-major RGBA). Treat as read-only.
func (b *Buffer) Pix() []uint8 {
	return b.pix
}

// RGB returns the color samples of a single pixel. Coordinates outside
// the buffer yield zero samples.
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, 0, 0
	}
	i := (y*b.width + x) * 4
	return b.pix[i], b.pix[i+1], b.pix[i+2]
}

// Lum returns the unnormalized luminance R+G+B of a pixel, in the range
// 0-765. Coordinates outside the buffer yield 0.
func (b *Buffer) Lum(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	i := (y*b.width + x) * 4
	return int(b.pix[i]) + int(b.pix[i+1]) + int(b.pix[i+2])
}

// Image returns an *image.RGBA view sharing the buffer's pixel data.
// The returned image must be treated as read-only.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: 4 * b.width,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// EncodePNG writes the buffer to w as a PNG image.
func (b *Buffer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.Image()); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}
