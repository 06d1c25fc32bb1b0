package cubemap

import (
	intImage "github.com/gogpu/cubemap/internal/image"
	xdraw "golang.org/x/image/draw"
)

// Default pipeline parameters.
const (
	// DefaultWorkingResolution is the side length faces are scaled to when
	// loaded into memory.
	DefaultWorkingResolution = 1024

	// DefaultScaleCeiling is the largest source dimension the pre-scaling
	// step may produce.
	DefaultScaleCeiling = 32767

	// DefaultMaxSourceScale is the largest integer pre-scale factor tried.
	DefaultMaxSourceScale = 7

	// DefaultPreviewWorkingSize and DefaultPreviewOutputSize are the build
	// and on-disk sizes of preview faces.
	DefaultPreviewWorkingSize = 1024
	DefaultPreviewOutputSize  = 512

	// DefaultFullWorkingFactor multiplies the source height to get the size
	// full-quality faces are built at before being reduced to the source height.
	DefaultFullWorkingFactor = 3
)

// Sampling selects how face pixels are sampled from the source panorama.
type Sampling = intImage.InterpolationMode

// Sampling modes.
const (
	// SamplingBilinear interpolates between 4 source pixels.
	SamplingBilinear = intImage.InterpBilinear

	// SamplingBicubic uses a 4x4 Catmull-Rom kernel.
	SamplingBicubic = intImage.InterpBicubic
)

// Option configures a Scene.
//
// Example:
//
//	s := cubemap.NewScene(cubemap.WithWorkers(4), cubemap.WithPreviewSizes(512, 256))
type Option func(*options)

type options struct {
	workers           int
	workingResolution int
	scaleCeiling      int
	maxSourceScale    int
	previewWorking    int
	previewOutput     int
	fullWorkingFactor int
	sourceInterp      xdraw.Interpolator
	sampling          Sampling
}

func defaultOptions() options {
	return options{
		workers:           0, // GOMAXPROCS
		workingResolution: DefaultWorkingResolution,
		scaleCeiling:      DefaultScaleCeiling,
		maxSourceScale:    DefaultMaxSourceScale,
		previewWorking:    DefaultPreviewWorkingSize,
		previewOutput:     DefaultPreviewOutputSize,
		fullWorkingFactor: DefaultFullWorkingFactor,
		sourceInterp:      xdraw.BiLinear,
		sampling:          SamplingBilinear,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// faceSizes returns the build and on-disk face sizes for a tier.
func (o *options) faceSizes(t Tier, sourceHeight int) (working, output int) {
	if t == TierPreview {
		return o.previewWorking, o.previewOutput
	}
	return sourceHeight * o.fullWorkingFactor, sourceHeight
}

// WithWorkers sets the number of goroutines sampling face pixels.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithWorkingResolution sets the side length of faces held in memory after
// loading. Non-positive values are ignored.
func WithWorkingResolution(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.workingResolution = size
		}
	}
}

// WithScaleCeiling sets the largest dimension the source pre-scaling may
// produce. Non-positive values are ignored.
func WithScaleCeiling(ceiling int) Option {
	return func(o *options) {
		if ceiling > 0 {
			o.scaleCeiling = ceiling
		}
	}
}

// WithMaxSourceScale sets the largest pre-scale factor tried. Values below 1
// are ignored; 1 disables pre-scaling.
func WithMaxSourceScale(factor int) Option {
	return func(o *options) {
		if factor >= 1 {
			o.maxSourceScale = factor
		}
	}
}

// WithPreviewSizes sets the build and on-disk sizes of preview faces.
// Non-positive values are ignored.
func WithPreviewSizes(working, output int) Option {
	return func(o *options) {
		if working > 0 && output > 0 {
			o.previewWorking = working
			o.previewOutput = output
		}
	}
}

// WithFullWorkingFactor sets the supersampling factor for full-quality faces.
// Values below 1 are ignored.
func WithFullWorkingFactor(factor int) Option {
	return func(o *options) {
		if factor >= 1 {
			o.fullWorkingFactor = factor
		}
	}
}

// WithSourceInterpolator sets the interpolator used to pre-scale the source.
// Nil is ignored.
func WithSourceInterpolator(interp xdraw.Interpolator) Option {
	return func(o *options) {
		if interp != nil {
			o.sourceInterp = interp
		}
	}
}

// WithSampling sets how face pixels are sampled from the pre-scaled source.
func WithSampling(mode Sampling) Option {
	return func(o *options) {
		o.sampling = mode
	}
}
