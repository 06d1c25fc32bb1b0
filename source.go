package cubemap

import (
	"fmt"
	stdimage "image"

	intImage "github.com/gogpu/cubemap/internal/image"
)

// Source is a decoded equirectangular panorama.
type Source struct {
	buf *intImage.Buffer
}

// LoadSource decodes the panorama at path. Failures wrap ErrEquirectRead.
func LoadSource(path string) (*Source, error) {
	buf, err := intImage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEquirectRead, err)
	}
	return &Source{buf: buf}, nil
}

// NewSource copies img into a new Source.
func NewSource(img stdimage.Image) (*Source, error) {
	buf, err := intImage.FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEquirectRead, err)
	}
	return &Source{buf: buf}, nil
}

// Width returns the panorama width in pixels.
func (s *Source) Width() int {
	return s.buf.Width()
}

// Height returns the panorama height in pixels.
func (s *Source) Height() int {
	return s.buf.Height()
}

// SourceScale returns the largest integer factor in [1, maxFactor] for which
// both width*factor and height*factor stay at or below ceiling. It returns 1
// when no factor above 1 fits.
func SourceScale(width, height, ceiling, maxFactor int) int {
	for f := maxFactor; f > 1; f-- {
		if width*f <= ceiling && height*f <= ceiling {
			return f
		}
	}
	return 1
}

// prepare returns the source enlarged by the largest factor the options allow,
// smoothing it so that face sampling reads already-filtered pixels.
func (s *Source) prepare(o *options) (*Source, int, error) {
	w, h := s.buf.Bounds()
	factor := SourceScale(w, h, o.scaleCeiling, o.maxSourceScale)
	if factor == 1 {
		return s, 1, nil
	}

	buf, err := intImage.Scale(s.buf, w*factor, h*factor, o.sourceInterp)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: scale %dx%d by %d: %w", ErrEquirectRead, w, h, factor, err)
	}
	return &Source{buf: buf}, factor, nil
}
