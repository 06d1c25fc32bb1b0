// Package projection maps cube-face pixels back onto an equirectangular panorama.
//
// The viewer sits at the origin with +Y up and +Z pointing at the centre of the
// panorama. Face images are seen from inside the cube: on the four side faces
// the image top points to +Y, the top face's bottom edge adjoins the front
// face and the bottom face's top edge adjoins the front face.
//
// All functions are pure and allocation free; Map is called once per output
// pixel and dominates the cost of building a face.
package projection

import "math"

// Side identifies one of the six cube faces. The numeric value is the face
// index used in cache file names and must not change.
type Side uint8

// Cube sides in face-index order.
const (
	PosX Side = iota // right
	NegX             // left
	PosY             // up
	NegY             // down
	PosZ             // front
	NegZ             // back
)

// SideCount is the number of faces of a cube.
const SideCount = 6

// Sides lists all sides in face-index order.
var Sides = [SideCount]Side{PosX, NegX, PosY, NegY, PosZ, NegZ}

// Valid reports whether s names a cube side.
func (s Side) Valid() bool {
	return s < SideCount
}

// String returns a short name for the side.
func (s Side) String() string {
	switch s {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return "Unknown"
	}
}

// Direction returns the (unnormalized) view direction through the point (a, b)
// of the given face, where a runs left to right and b top to bottom, both in [-1, 1].
// Invalid sides return the front direction.
func Direction(s Side, a, b float64) (x, y, z float64) {
	switch s {
	case PosX:
		return 1, -b, -a
	case NegX:
		return -1, -b, a
	case PosY:
		return a, 1, b
	case NegY:
		return a, -1, -b
	case NegZ:
		return -a, -b, -1
	default:
		return a, -b, 1
	}
}

// Equirect converts a view direction to fractional pixel coordinates in a
// w x h equirectangular image. Longitude 0 (+Z) maps to the horizontal centre,
// the north pole to the top row. The result lies in [0, w) x [0, h).
func Equirect(x, y, z float64, w, h int) (sx, sy float64) {
	lon := math.Atan2(x, z)
	lat := math.Atan2(y, math.Hypot(x, z))

	fw := float64(w)
	fh := float64(h)

	sx = (lon/(2*math.Pi) + 0.5) * fw
	if sx >= fw {
		sx -= fw
	}
	if sx < 0 {
		sx += fw
	}

	sy = (0.5 - lat/math.Pi) * fh
	if sy < 0 {
		sy = 0
	}
	if sy >= fh {
		sy = math.Nextafter(fh, 0)
	}
	return sx, sy
}

// Map returns the equirectangular source coordinates (in a w x h image) that
// correspond to the centre of pixel (px, py) of a size x size face.
func Map(s Side, px, py, size, w, h int) (sx, sy float64) {
	inv := 2 / float64(size)
	a := (float64(px)+0.5)*inv - 1
	b := (float64(py)+0.5)*inv - 1
	x, y, z := Direction(s, a, b)
	return Equirect(x, y, z, w, h)
}

// Row fills xs and ys with the source coordinates of every pixel in row py.
// xs and ys must hold at least size elements. It is equivalent to calling Map
// for each pixel but hoists the per-row work out of the loop.
func Row(s Side, py, size, w, h int, xs, ys []float64) {
	inv := 2 / float64(size)
	b := (float64(py)+0.5)*inv - 1
	_ = xs[size-1]
	_ = ys[size-1]
	for px := range size {
		a := (float64(px)+0.5)*inv - 1
		x, y, z := Direction(s, a, b)
		xs[px], ys[px] = Equirect(x, y, z, w, h)
	}
}
