package cubemap

import (
	"fmt"
	stdimage "image"

	intImage "github.com/gogpu/cubemap/internal/image"
	"github.com/gogpu/cubemap/internal/parallel"
	"github.com/gogpu/cubemap/internal/projection"
)

// bandsPerWorker controls how finely a face is split for progress and
// cancellation checks.
const bandsPerWorker = 4

// Face is one square cube-face image. Faces are values: Scaled returns a new
// Face and never modifies the receiver.
type Face struct {
	buf *intImage.Buffer
}

// LoadFace decodes the face image at path.
func LoadFace(path string) (*Face, error) {
	buf, err := intImage.Load(path)
	if err != nil {
		return nil, err
	}
	return &Face{buf: buf}, nil
}

// NewFace copies img into a new Face.
func NewFace(img stdimage.Image) (*Face, error) {
	buf, err := intImage.FromStdImage(img)
	if err != nil {
		return nil, err
	}
	return &Face{buf: buf}, nil
}

// BuildFace renders one side of the cube at size x size pixels by sampling src.
//
// Progress advances by ProgressFaceUnits from its current value. Cancellation
// is polled between bands of rows; a cancelled build returns ErrCancelled and
// no Face.
func BuildFace(p Progress, src *Source, side Side, size int, opts ...Option) (*Face, error) {
	o := newOptions(opts)
	b := newFaceBuilder(&o)
	defer b.close()
	return b.build(p, src, side, size)
}

// faceBuilder holds what consecutive face builds share: the sampling
// goroutines and the working buffers.
type faceBuilder struct {
	workers *parallel.WorkerPool
	bufs    *intImage.Pool
	mode    Sampling
}

func newFaceBuilder(o *options) *faceBuilder {
	return &faceBuilder{
		workers: parallel.NewWorkerPool(o.workers),
		bufs:    intImage.NewPool(1),
		mode:    o.sampling,
	}
}

func (b *faceBuilder) close() {
	b.workers.Close()
}

// release hands the pixels of f back for the next build. f must not be used
// afterwards.
func (b *faceBuilder) release(f *Face) {
	if f != nil {
		b.bufs.Put(f.buf)
	}
}

func (b *faceBuilder) build(p Progress, src *Source, side Side, size int) (*Face, error) {
	if p == nil {
		return nil, ErrInvalidProgress
	}
	if src == nil || src.buf.IsEmpty() {
		return nil, ErrInputNotDefined
	}
	if !side.Valid() || size <= 0 {
		return nil, fmt.Errorf("%w: side %d, size %d", ErrInvalidFace, side, size)
	}

	dst, err := b.bufs.Get(size, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFace, err)
	}

	start := p.Value()
	sw, sh := src.buf.Bounds()
	workers := b.workers.Workers()
	bands := parallel.SplitRows(size, workers*bandsPerWorker)

	done := 0
	for _, batch := range parallel.Batches(bands, workers) {
		work := make([]func(), len(batch))
		for i, band := range batch {
			work[i] = func() {
				renderBand(dst, src.buf, side, size, sw, sh, band, b.mode)
			}
			done += band.Rows()
		}
		b.workers.ExecuteAll(work)

		p.SetValue(start + ProgressFaceUnits*done/size)
		if p.Cancelled() {
			b.bufs.Put(dst)
			return nil, ErrCancelled
		}
	}

	return &Face{buf: dst}, nil
}

// renderBand fills rows [band.Y0, band.Y1) of dst.
func renderBand(dst, src *intImage.Buffer, side Side, size, sw, sh int, band parallel.Band, mode Sampling) {
	xs := make([]float64, size)
	ys := make([]float64, size)
	for y := band.Y0; y < band.Y1; y++ {
		projection.Row(side, y, size, sw, sh, xs, ys)
		row := dst.RowBytes(y)
		for x := range size {
			r, g, b, a := intImage.Sample(src, xs[x], ys[x], mode)
			i := x * intImage.BytesPerPixel
			row[i], row[i+1], row[i+2], row[i+3] = r, g, b, a
		}
	}
}

// Scaled returns a new Face resampled to width x height. Shrinking averages
// the covered pixels, which completes supersampled builds.
func (f *Face) Scaled(width, height int) (*Face, error) {
	g, err := f.resized(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFace, err)
	}
	return g, nil
}

// resized is Scaled without classifying the error, for callers that report
// the failure under their own error kind.
func (f *Face) resized(width, height int) (*Face, error) {
	buf, err := intImage.Resize(f.buf, width, height)
	if err != nil {
		return nil, err
	}
	return &Face{buf: buf}, nil
}

// Save writes the face as a PNG file. Failures wrap ErrOutputWrite.
func (f *Face) Save(path string) error {
	if err := f.buf.SavePNG(path); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	return nil
}

// Size returns the side length of the face in pixels.
func (f *Face) Size() int {
	return f.buf.Width()
}

// Image returns the face pixels as an image sharing the face's memory.
// Callers must not modify it.
func (f *Face) Image() *stdimage.NRGBA {
	return f.buf.NRGBA()
}

// Equal reports whether two faces hold identical pixels.
func (f *Face) Equal(o *Face) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.buf.Equal(o.buf)
}
