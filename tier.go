package cubemap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/cubemap/internal/projection"
)

// Side identifies one of the six cube faces.
type Side = projection.Side

// Cube sides in face-index order. The index is part of the cache file name.
const (
	PosX = projection.PosX
	NegX = projection.NegX
	PosY = projection.PosY
	NegY = projection.NegY
	PosZ = projection.PosZ
	NegZ = projection.NegZ
)

// FaceCount is the number of cube faces per tier.
const FaceCount = projection.SideCount

// Tier is a quality level of generated faces.
type Tier uint8

const (
	// TierFull faces are stored at the source height.
	TierFull Tier = iota

	// TierPreview faces are small and quick to build.
	TierPreview
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierPreview:
		return "preview"
	default:
		return "unknown"
	}
}

func (t Tier) suffix() string {
	if t == TierPreview {
		return "_preview"
	}
	return ""
}

// CacheDirFor returns the face cache directory of a source image: a
// directory next to the source, named after the file name up to its first dot.
// A leading dot is kept, so ".pano.jpg" caches into ".pano".
func CacheDirFor(source string) string {
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = filepath.Clean(source)
	}

	dir := filepath.Dir(abs)
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		dir = real
	}

	base := filepath.Base(abs)
	if i := strings.IndexByte(base[1:], '.'); i >= 0 {
		base = base[:i+1]
	}
	return filepath.Join(dir, base)
}

// FacePath returns the file of one face of a tier inside a cache directory,
// for example face003_preview.png.
func FacePath(cacheDir string, side Side, t Tier) string {
	return filepath.Join(cacheDir, fmt.Sprintf("face%03d%s.png", int(side), t.suffix()))
}

// TierExists reports whether all six face files of the tier exist next to
// source and are non-empty. Contents are not inspected.
func TierExists(source string, t Tier) bool {
	dir := CacheDirFor(source)
	for _, side := range projection.Sides {
		fi, err := os.Stat(FacePath(dir, side, t))
		if err != nil || !fi.Mode().IsRegular() || fi.Size() == 0 {
			return false
		}
	}
	return true
}

// FacesExist reports whether the full tier of source is present.
func FacesExist(source string) bool {
	return TierExists(source, TierFull)
}

// PreviewExists reports whether the preview tier of source is present.
func PreviewExists(source string) bool {
	return TierExists(source, TierPreview)
}

// RemoveTier deletes the face files of a tier. Missing files are ignored.
// The cache directory is removed when it ends up empty.
func RemoveTier(source string, t Tier) error {
	dir := CacheDirFor(source)
	var errs []error
	for _, side := range projection.Sides {
		err := os.Remove(FacePath(dir, side, t))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
	return nil
}
