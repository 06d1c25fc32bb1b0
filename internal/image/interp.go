package image

import "math"

// InterpolationMode defines how a source buffer is sampled.
type InterpolationMode uint8

const (
	// InterpBilinear interpolates between the 4 neighboring pixels.
	InterpBilinear InterpolationMode = iota

	// InterpBicubic performs Catmull-Rom interpolation over a 4x4 neighborhood.
	// Sharper than bilinear but roughly four times slower.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Sample samples img at the fractional pixel position (x, y), where pixel i
// covers [i, i+1). Columns wrap around horizontally, which matches the
// longitude seam of an equirectangular image; rows are clamped to the edge.
func Sample(img *Buffer, x, y float64, mode InterpolationMode) (r, g, b, a byte) {
	if mode == InterpBicubic {
		return SampleBicubic(img, x, y)
	}
	return SampleBilinear(img, x, y)
}

// SampleBilinear performs bilinear interpolation at pixel position (x, y).
func SampleBilinear(img *Buffer, x, y float64) (r, g, b, a byte) {
	w, h := img.Bounds()

	fx := x - 0.5
	fy := y - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrap(x0+1, w)
	x0 = wrap(x0, w)
	y1 := clamp(y0+1, 0, h-1)
	y0 = clamp(y0, 0, h-1)

	p00 := img.data[y0*img.stride+x0*4:]
	p10 := img.data[y0*img.stride+x1*4:]
	p01 := img.data[y1*img.stride+x0*4:]
	p11 := img.data[y1*img.stride+x1*4:]

	r = round8(lerp2D(float64(p00[0]), float64(p10[0]), float64(p01[0]), float64(p11[0]), tx, ty))
	g = round8(lerp2D(float64(p00[1]), float64(p10[1]), float64(p01[1]), float64(p11[1]), tx, ty))
	b = round8(lerp2D(float64(p00[2]), float64(p10[2]), float64(p01[2]), float64(p11[2]), tx, ty))
	a = round8(lerp2D(float64(p00[3]), float64(p10[3]), float64(p01[3]), float64(p11[3]), tx, ty))

	return r, g, b, a
}

// SampleBicubic performs Catmull-Rom interpolation at pixel position (x, y).
func SampleBicubic(img *Buffer, x, y float64) (r, g, b, a byte) {
	w, h := img.Bounds()

	fx := x - 0.5
	fy := y - 0.5

	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	wx := [4]float64{cubicWeight(tx + 1), cubicWeight(tx), cubicWeight(tx - 1), cubicWeight(tx - 2)}
	wy := [4]float64{cubicWeight(ty + 1), cubicWeight(ty), cubicWeight(ty - 1), cubicWeight(ty - 2)}

	var acc [4]float64
	for j := range 4 {
		py := clamp(iy+j-1, 0, h-1)
		row := img.data[py*img.stride:]
		for i := range 4 {
			px := wrap(ix+i-1, w)
			p := row[px*4:]
			k := wx[i] * wy[j]
			acc[0] += float64(p[0]) * k
			acc[1] += float64(p[1]) * k
			acc[2] += float64(p[2]) * k
			acc[3] += float64(p[3]) * k
		}
	}

	return round8(acc[0]), round8(acc[1]), round8(acc[2]), round8(acc[3])
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// wrap maps val into [0, n).
func wrap(val, n int) int {
	val %= n
	if val < 0 {
		val += n
	}
	return val
}

// round8 rounds to the nearest byte, saturating at 0 and 255.
func round8(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}
