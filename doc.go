// Package cubemap converts equirectangular panoramas into the six faces of a
// cube map and caches them on disk.
//
// # Overview
//
// A [Scene] owns the faces generated from one source image. Faces come in two
// tiers: [TierPreview] faces are small and quick to build, [TierFull] faces
// are as tall as the source. Built faces are written as PNG files into a
// directory next to the source, named after the source file:
//
//	pano.jpg
//	pano/face000.png ... face005.png                  full tier
//	pano/face000_preview.png ... face005_preview.png  preview tier
//
// A tier counts as present only when all six files exist and are non-empty.
//
// # Quick Start
//
//	s := cubemap.NewScene()
//	tr := cubemap.NewTracker(ctx)
//	if err := s.LoadImage(tr, "pano.jpg", cubemap.Request{}); err != nil {
//	    return err
//	}
//	front := s.Face(int(cubemap.PosZ)).Image()
//
// # Faces
//
// Faces are indexed 0..5 as +X, -X, +Y, -Y, +Z, -Z. The viewer looks along +Z
// at the centre of the panorama with +Y up. Full-quality faces are rendered at
// three times their output size from a smoothly enlarged copy of the source
// and then reduced with a box filter, which suppresses aliasing.
//
// Faces held by a Scene are always scaled to the working resolution
// (1024x1024 by default) regardless of their size on disk.
//
// # Progress and Cancellation
//
// Long operations report to a [Progress]. LoadImage moves it forward by
// [ProgressTotalUnits] from its value at the start of the call and polls
// Cancelled between bands of rows and after every face.
//
// # Errors
//
// Every returned error wraps one of [ErrInvalidProgress], [ErrInputNotDefined],
// [ErrEquirectRead], [ErrFaceRead], [ErrOutputWrite], [ErrCancelled] or
// [ErrInvalidFace].
package cubemap
