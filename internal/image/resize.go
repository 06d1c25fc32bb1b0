package image

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
)

// Resize returns a new width x height copy of src.
//
// Shrinking uses a box filter, which averages every source pixel that falls
// inside a destination pixel; this is the reduction step of supersampling.
// Enlarging uses linear interpolation. A buffer that already has the requested
// size is cloned.
func Resize(src *Buffer, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width == src.width && height == src.height {
		return src.Clone(), nil
	}

	filter := transform.Linear
	if width <= src.width && height <= src.height {
		filter = transform.Box
	}

	return FromStdImage(transform.Resize(src.NRGBA(), width, height, filter))
}

// Scale returns a new width x height copy of src resampled with interp.
// It is meant for very large images: the destination is written in place
// with no intermediate copy.
func Scale(src *Buffer, width, height int, interp xdraw.Interpolator) (*Buffer, error) {
	dst, err := NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	if interp == nil {
		interp = xdraw.BiLinear
	}

	// Scale into a premultiplied view of the destination memory, which hits the
	// interpolator's fast path, then convert back to straight alpha.
	view := &image.RGBA{
		Pix:    dst.data,
		Stride: dst.stride,
		Rect:   image.Rect(0, 0, width, height),
	}
	srcImg := src.NRGBA()
	interp.Scale(view, view.Rect, srcImg, srcImg.Rect, xdraw.Src, nil)

	dst.unpremultiply()
	return dst, nil
}

// unpremultiply converts premultiplied pixels to straight alpha in place.
func (b *Buffer) unpremultiply() {
	for y := range b.height {
		row := b.RowBytes(y)
		for i := 0; i < len(row); i += 4 {
			a := row[i+3]
			if a == 0xff || a == 0 {
				continue
			}
			row[i] = unpremul(row[i], a)
			row[i+1] = unpremul(row[i+1], a)
			row[i+2] = unpremul(row[i+2], a)
		}
	}
}
