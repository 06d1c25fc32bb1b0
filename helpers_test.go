package cubemap

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// recorder is a Progress that remembers every value and label it was given.
// It cancels itself once the value reaches cancelAt (when cancelAt > 0).
type recorder struct {
	value     int
	values    []int
	labels    []string
	cancelAt  int
	cancelled bool
}

func (r *recorder) Value() int { return r.value }

func (r *recorder) SetValue(v int) {
	r.value = v
	r.values = append(r.values, v)
	if r.cancelAt > 0 && v >= r.cancelAt {
		r.cancelled = true
	}
}

func (r *recorder) SetLabel(s string) { r.labels = append(r.labels, s) }

func (r *recorder) Cancelled() bool { return r.cancelled }

// testOptions keeps builds small: a 64x32 source gives 96px full faces
// reduced to 32px, previews are built at 48px and stored at 16px.
func testOptions() []Option {
	return []Option{
		WithWorkers(2),
		WithWorkingResolution(32),
		WithPreviewSizes(48, 16),
		WithMaxSourceScale(3),
	}
}

// writePanorama writes a w x h PNG whose top half is white and bottom half
// black, with a horizontal colour ramp in the red channel.
func writePanorama(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			v := uint8(0)
			if y < h/2 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: v, B: v, A: 255})
		}
	}

	path := filepath.Join(dir, "pano.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
	return path
}

// writeFile writes data to path or fails the test.
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// mustLoad runs LoadImage and fails the test on error.
func mustLoad(t *testing.T, s *Scene, p Progress, source string, req Request) {
	t.Helper()
	if err := s.LoadImage(p, source, req); err != nil {
		t.Fatalf("LoadImage(%+v) error = %v", req, err)
	}
}

// tierFiles returns the six face paths of a tier for source.
func tierFiles(source string, tier Tier) []string {
	dir := CacheDirFor(source)
	files := make([]string, 0, FaceCount)
	for i := range FaceCount {
		files = append(files, FacePath(dir, Side(i), tier))
	}
	return files
}

// countExisting returns how many face files of a tier are present.
func countExisting(source string, tier Tier) int {
	n := 0
	for _, f := range tierFiles(source, tier) {
		if _, err := os.Stat(f); err == nil {
			n++
		}
	}
	return n
}

// modTimes returns the modification time of every face file of a tier.
func modTimes(t *testing.T, source string, tier Tier) map[string]time.Time {
	t.Helper()
	out := make(map[string]time.Time, FaceCount)
	for _, f := range tierFiles(source, tier) {
		fi, err := os.Stat(f)
		if err != nil {
			t.Fatalf("stat %s: %v", f, err)
		}
		out[f] = fi.ModTime()
	}
	return out
}

// checkUnchanged fails if any file in before was modified since.
func checkUnchanged(t *testing.T, before map[string]time.Time) {
	t.Helper()
	for f, mt := range before {
		fi, err := os.Stat(f)
		if err != nil {
			t.Fatalf("stat %s: %v", f, err)
		}
		if !fi.ModTime().Equal(mt) {
			t.Errorf("%s was rewritten", f)
		}
	}
}

func imageSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

// errorKinds lists the sentinel errors an error matches.
func errorKinds(err error) []error {
	var kinds []error
	for _, k := range []error{
		ErrInvalidProgress, ErrInputNotDefined, ErrEquirectRead, ErrFaceRead,
		ErrOutputWrite, ErrCancelled, ErrInvalidFace,
	} {
		if errors.Is(err, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// checkKind fails unless err matches want and no other sentinel.
func checkKind(t *testing.T, err, want error) {
	t.Helper()
	kinds := errorKinds(err)
	if len(kinds) != 1 || kinds[0] != want {
		t.Errorf("error = %v, matches %v, want exactly %v", err, kinds, want)
	}
}
