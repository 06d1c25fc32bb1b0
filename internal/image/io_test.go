package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromStdImage_NRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	nrgba.Set(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 200})

	buf, err := FromStdImage(nrgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}

	r, g, b, a := buf.GetRGBA(3, 3)
	if r != 128 || g != 64 || b != 32 || a != 200 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (128, 64, 32, 200)", r, g, b, a)
	}
}

func TestFromStdImage_RGBAUnpremultiplies(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rgba.SetRGBA(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	rgba.SetRGBA(2, 2, color.RGBA{R: 64, G: 32, B: 0, A: 128})

	buf, err := FromStdImage(rgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}

	r, g, b, a := buf.GetRGBA(1, 1)
	if r != 200 || g != 100 || b != 50 || a != 255 {
		t.Errorf("opaque pixel = (%d, %d, %d, %d), want (200, 100, 50, 255)", r, g, b, a)
	}
	r, g, b, a = buf.GetRGBA(2, 2)
	if r != 128 || g != 64 || b != 0 || a != 128 {
		t.Errorf("translucent pixel = (%d, %d, %d, %d), want (128, 64, 0, 128)", r, g, b, a)
	}
}

func TestFromStdImage_SubImage(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	nrgba.Set(5, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	sub := nrgba.SubImage(image.Rect(4, 4, 8, 8))

	buf, err := FromStdImage(sub)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if buf.Width() != 4 || buf.Height() != 4 {
		t.Fatalf("Bounds() = (%d, %d), want (4, 4)", buf.Width(), buf.Height())
	}
	if r, g, b, _ := buf.GetRGBA(1, 2); r != 1 || g != 2 || b != 3 {
		t.Errorf("Pixel = (%d, %d, %d), want (1, 2, 3)", r, g, b)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	buf, err := FromStdImage(gray)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}

	r, g, b, a := buf.GetRGBA(5, 5)
	if r != 128 || g != 128 || b != 128 || a != 255 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (128, 128, 128, 255)", r, g, b, a)
	}
}

func TestSaveLoadPNG(t *testing.T) {
	buf, _ := NewBuffer(16, 8)
	buf.Fill(10, 20, 30, 255)
	_ = buf.SetRGBA(15, 7, 250, 240, 230, 255)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := buf.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(buf) {
		t.Error("loaded PNG differs from saved buffer")
	}

	mime, err := Sniff(path)
	if err != nil {
		t.Fatalf("Sniff() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("Sniff() = %q, want image/png", mime)
	}
}

func TestLoadJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := range 16 {
		for x := range 32 {
			img.SetRGBA(x, y, color.RGBA{R: 90, G: 90, B: 90, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "pano.jpg")
	var data bytes.Buffer
	if err := jpeg.Encode(&data, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}
	if err := os.WriteFile(path, data.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if buf.Width() != 32 || buf.Height() != 16 {
		t.Errorf("Bounds() = (%d, %d), want (32, 16)", buf.Width(), buf.Height())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Load(empty) error = %v, want %v", err, ErrEmptyData)
	}

	text := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(text, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(text); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(text) error = %v, want %v", err, ErrUnsupportedFormat)
	}

	// Valid PNG signature followed by garbage.
	corrupt := filepath.Join(dir, "corrupt.png")
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 64)...)
	if err := os.WriteFile(corrupt, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(corrupt); err == nil {
		t.Error("Load(corrupt) should fail")
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestSavePNG_Unwritable(t *testing.T) {
	buf, _ := NewBuffer(2, 2)
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "x.png")
	if err := buf.SavePNG(path); err == nil {
		t.Error("SavePNG() into a missing directory should fail")
	}
}

func TestEncodePNG(t *testing.T) {
	buf, _ := NewBuffer(3, 2)
	buf.Fill(1, 2, 3, 4)

	var out bytes.Buffer
	if err := buf.EncodePNG(&out); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("decoded bounds = %v, want 3x2", img.Bounds())
	}
}
