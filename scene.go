package cubemap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gogpu/cubemap/internal/projection"
)

// Scene holds the six cube faces generated from one panorama source image.
//
// A Scene is either empty or holds all six faces of one tier at the working
// resolution; callers never observe a partially loaded set.
//
// Scene is not safe for concurrent use, and two Scenes must not build into
// the same cache directory at the same time.
type Scene struct {
	sourcePath string
	cacheDir   string
	faces      [FaceCount]*Face
	tier       Tier
	opts       options
}

// NewScene returns an empty Scene.
func NewScene(opts ...Option) *Scene {
	return &Scene{opts: newOptions(opts)}
}

// Clear resets the scene to empty.
func (s *Scene) Clear() {
	s.sourcePath = ""
	s.cacheDir = ""
	s.faces = [FaceCount]*Face{}
	s.tier = TierFull
}

// LoadImage prepares the faces of the panorama at source.
//
// It first builds at most one tier when the cache needs it (see Request),
// then, unless req.BuildOnly is set, loads the faces into memory. Progress
// advances by exactly ProgressTotalUnits whether or not a build happened.
func (s *Scene) LoadImage(p Progress, source string, req Request) error {
	if p == nil {
		return ErrInvalidProgress
	}

	s.Clear()
	s.sourcePath = source
	s.cacheDir = CacheDirFor(source)

	start := p.Value()
	log := Logger().With("source", source)

	var err error
	plan := planBuild(FacesExist(source), PreviewExists(source), req)
	log.Debug("cubemap: cache decision", "plan", plan, "dir", s.cacheDir)
	switch plan {
	case buildFull:
		err = s.BuildFaces(p, TierFull)
	case buildPreview:
		err = s.BuildFaces(p, TierPreview)
	}

	p.SetValue(start + ProgressBuildUnits)

	if err == nil {
		switch planLoad(req) {
		case loadPreviewTier:
			err = s.LoadFaces(TierPreview)
		case loadFullWithFallback:
			err = s.loadFullWithFallback()
		}
	}

	p.SetValue(start + ProgressTotalUnits)
	return err
}

// loadFullWithFallback loads the full tier, or the preview tier when the full
// tier is absent or unreadable.
func (s *Scene) loadFullWithFallback() error {
	if !FacesExist(s.sourcePath) {
		return s.LoadFaces(TierPreview)
	}

	err := s.LoadFaces(TierFull)
	if err == nil {
		return nil
	}
	Logger().Warn("cubemap: full tier unreadable, using preview",
		"dir", s.cacheDir, "err", err)
	return s.LoadFaces(TierPreview)
}

// LoadFaces loads the six faces of a tier from the cache directory, scaling
// each to the working resolution. On failure the scene holds no faces.
func (s *Scene) LoadFaces(t Tier) error {
	if s.cacheDir == "" {
		return ErrInputNotDefined
	}

	size := s.opts.workingResolution
	var faces [FaceCount]*Face
	for _, side := range projection.Sides {
		path := FacePath(s.cacheDir, side, t)
		f, err := LoadFace(path)
		if err == nil {
			f, err = f.resized(size, size)
		}
		if err != nil {
			s.faces = [FaceCount]*Face{}
			return fmt.Errorf("%w: %s: %w", ErrFaceRead, path, err)
		}
		faces[side] = f
	}

	s.faces = faces
	s.tier = t
	Logger().Info("cubemap: faces loaded", "dir", s.cacheDir, "tier", t, "size", size)
	return nil
}

// BuildFaces generates the six faces of a tier from the source image and
// writes them to the cache directory. Progress advances by at most
// ProgressBuildUnits. The first failure stops the build; faces already
// written stay on disk.
func (s *Scene) BuildFaces(p Progress, t Tier) error {
	if p == nil {
		return ErrInvalidProgress
	}
	if s.sourcePath == "" || s.cacheDir == "" {
		return ErrInputNotDefined
	}

	start := p.Value()
	log := Logger().With("source", s.sourcePath, "tier", t)

	src, err := LoadSource(s.sourcePath)
	if err != nil {
		return err
	}
	height := src.Height()

	scaled, factor, err := src.prepare(&s.opts)
	if err != nil {
		return err
	}
	log.Debug("cubemap: source prepared",
		"width", src.Width(), "height", height, "factor", factor)

	p.SetValue(start + ProgressSourceUnits)

	working, output := s.opts.faceSizes(t, height)

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	b := newFaceBuilder(&s.opts)
	defer b.close()

	for _, side := range projection.Sides {
		began := time.Now()
		p.SetValue(start + ProgressSourceUnits + int(side)*ProgressFaceUnits)
		p.SetLabel(buildLabel(t, side))

		built, err := b.build(p, scaled, side, working)
		if err != nil {
			return err
		}
		face, err := built.resized(output, output)
		b.release(built)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
		if err := face.Save(FacePath(s.cacheDir, side, t)); err != nil {
			return err
		}
		log.Debug("cubemap: face built", "side", side, "working", working,
			"output", output, "elapsed", time.Since(began))

		if p.Cancelled() {
			return ErrCancelled
		}
	}

	log.Info("cubemap: tier built", "dir", s.cacheDir, "size", output)
	return nil
}

// Face returns face i (0..5) of the loaded tier, or nil when nothing is loaded.
func (s *Scene) Face(i int) *Face {
	if i < 0 || i >= FaceCount {
		return nil
	}
	return s.faces[i]
}

// Faces returns the six loaded faces in face-index order.
func (s *Scene) Faces() [FaceCount]*Face {
	return s.faces
}

// Loaded reports whether the scene holds a complete set of faces.
func (s *Scene) Loaded() bool {
	return s.faces[0] != nil
}

// Tier returns the tier of the loaded faces. It is only meaningful when Loaded.
func (s *Scene) Tier() Tier {
	return s.tier
}

// IsPreview reports whether the loaded faces are preview quality.
func (s *Scene) IsPreview() bool {
	return s.Loaded() && s.tier == TierPreview
}

// SourcePath returns the source image of the scene.
func (s *Scene) SourcePath() string {
	return s.sourcePath
}

// CacheDir returns the face cache directory of the scene.
func (s *Scene) CacheDir() string {
	return s.cacheDir
}

// IsCancelled reports whether err is the result of cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
