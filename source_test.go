package cubemap

import (
	"image"
	"image/color"
	"testing"
)

func TestSourceScale(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		ceiling int
		max     int
		want    int
	}{
		{"small source takes max factor", 4000, 2000, 32767, 7, 7},
		{"exact ceiling", 4681, 2340, 32767, 7, 7},
		{"just above ceiling", 4682, 2341, 32767, 7, 6},
		{"large source", 10000, 5000, 32767, 7, 3},
		{"only factor 2 fits", 16000, 8000, 32767, 7, 2},
		{"nothing fits", 20000, 10000, 32767, 7, 1},
		{"scaling disabled", 100, 50, 32767, 1, 1},
		{"custom ceiling", 64, 32, 200, 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SourceScale(tt.w, tt.h, tt.ceiling, tt.max)
			if got != tt.want {
				t.Errorf("SourceScale(%d, %d, %d, %d) = %d, want %d", tt.w, tt.h, tt.ceiling, tt.max, got, tt.want)
			}
			if got > 1 && (tt.w*got > tt.ceiling || tt.h*got > tt.ceiling) {
				t.Errorf("factor %d exceeds ceiling %d", got, tt.ceiling)
			}
		})
	}
}

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSourcePrepare(t *testing.T) {
	src, err := NewSource(uniformImage(40, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	if src.Width() != 40 || src.Height() != 20 {
		t.Fatalf("source size = %dx%d, want 40x20", src.Width(), src.Height())
	}

	o := newOptions([]Option{WithScaleCeiling(100)})
	scaled, factor, err := src.prepare(&o)
	if err != nil {
		t.Fatalf("prepare() error = %v", err)
	}
	if factor != 2 || scaled.Width() != 80 || scaled.Height() != 40 {
		t.Errorf("prepare() = %dx%d factor %d, want 80x40 factor 2", scaled.Width(), scaled.Height(), factor)
	}
	r, g, b, a := scaled.buf.GetRGBA(13, 17)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("scaled pixel = (%d, %d, %d, %d), want (10, 20, 30, 255)", r, g, b, a)
	}

	o = newOptions([]Option{WithMaxSourceScale(1)})
	same, factor, err := src.prepare(&o)
	if err != nil {
		t.Fatal(err)
	}
	if factor != 1 || same != src {
		t.Errorf("prepare() with scaling disabled = factor %d, same %v, want 1, true", factor, same == src)
	}
}
