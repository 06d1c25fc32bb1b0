// Package image provides the pixel buffers used while building cube faces.
//
// Every buffer is 8-bit RGBA, non-premultiplied, stored row-major in a single
// contiguous slice. The layout is identical to image.NRGBA so a buffer can be
// handed to the standard library and to resampling packages without copying.
package image

import (
	"bytes"
	"errors"
	"image"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrTooLarge is returned when the pixel count would overflow the address space.
	ErrTooLarge = errors.New("image: dimensions too large")
)

// maxPixels bounds width*height so that the byte size fits in an int.
const maxPixels = int(^uint(0)>>1) / BytesPerPixel

// Buffer is an RGBA8 image buffer.
//
// Thread safety: Buffer is safe for concurrent reads. Concurrent writes to
// disjoint rows are safe; anything else requires external synchronization.
type Buffer struct {
	data   []byte
	width  int
	height int
	stride int
}

// NewBuffer allocates a zeroed width x height buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width > maxPixels/height {
		return nil, ErrTooLarge
	}

	stride := width * BytesPerPixel
	return &Buffer{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
	}
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.stride
}

// Bounds returns the image dimensions as (width, height).
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *Buffer) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *Buffer) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*BytesPerPixel]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*BytesPerPixel
}

// GetRGBA returns the color at (x, y).
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *Buffer) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off : off+4 : off+4]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA sets the color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = r, g, bl, a
	return nil
}

// Clear sets all pixels to transparent black.
func (b *Buffer) Clear() {
	clear(b.data)
}

// Fill sets all pixels to the given color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	if b.height == 0 {
		return
	}
	row := b.RowBytes(0)
	for x := 0; x < len(row); x += BytesPerPixel {
		row[x], row[x+1], row[x+2], row[x+3] = r, g, bl, a
	}
	for y := 1; y < b.height; y++ {
		copy(b.RowBytes(y), row)
	}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := range b.height {
		if !bytes.Equal(b.RowBytes(y), o.RowBytes(y)) {
			return false
		}
	}
	return true
}

// NRGBA returns an image.NRGBA that shares the buffer's pixel memory.
// Writes through the returned image are visible in the buffer.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.data,
		Stride: b.stride,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ByteSize returns the total size of the image data in bytes.
func (b *Buffer) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the image has zero dimensions.
func (b *Buffer) IsEmpty() bool {
	return b == nil || b.width == 0 || b.height == 0
}
