package cubemap

import "errors"

// Errors returned by the face pipeline. Every error returned by this package
// wraps exactly one of them, so callers can classify failures with errors.Is.
var (
	// ErrInvalidProgress is returned when no Progress was supplied.
	ErrInvalidProgress = errors.New("cubemap: progress reporter not provided")

	// ErrInputNotDefined is returned when an operation needs a source image or
	// cache directory that has not been set up by LoadImage.
	ErrInputNotDefined = errors.New("cubemap: input not defined")

	// ErrEquirectRead is returned when the source panorama cannot be decoded.
	ErrEquirectRead = errors.New("cubemap: cannot read equirectangular image")

	// ErrFaceRead is returned when a cached face image cannot be decoded.
	ErrFaceRead = errors.New("cubemap: cannot read face image")

	// ErrOutputWrite is returned when the cache directory cannot be created or
	// a face image cannot be written.
	ErrOutputWrite = errors.New("cubemap: cannot write output")

	// ErrCancelled is returned when cancellation was observed during a build.
	ErrCancelled = errors.New("cubemap: operation cancelled")

	// ErrInvalidFace is returned for an unknown side, or a face size that is
	// not positive or too large to allocate.
	ErrInvalidFace = errors.New("cubemap: invalid face parameters")
)
