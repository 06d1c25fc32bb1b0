package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file is not a recognised image.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// sniffLen is the number of header bytes inspected to detect the file type.
const sniffLen = 261

// Load reads and decodes the image file at path, detecting the format from
// its content. PNG, JPEG, GIF, WebP, TIFF and BMP are supported.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	head, err := readHeader(f)
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	return Decode(io.MultiReader(bytes.NewReader(head), f))
}

// Sniff returns the MIME type detected from the header of the file at path.
func Sniff(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	head, err := readHeader(f)
	if err != nil {
		return "", err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return "", fmt.Errorf("image: sniff: %w", err)
	}
	if kind == filetype.Unknown {
		return "", ErrUnsupportedFormat
	}
	return kind.MIME.Value, nil
}

func readHeader(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	switch {
	case errors.Is(err, io.EOF):
		return nil, ErrEmptyData
	case err != nil && !errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("image: read header: %w", err)
	}
	return head[:n], nil
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// SavePNG writes the buffer as a PNG file. A partially written file is
// removed on failure so that it cannot be mistaken for a valid image.
func (b *Buffer) SavePNG(path string) error {
	path = filepath.Clean(path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("image: close file: %w", err)
	}
	return nil
}

// EncodePNG encodes the buffer as PNG to the given writer.
func (b *Buffer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.NRGBA()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// FromStdImage copies a standard library image into a new Buffer.
func FromStdImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf, err := NewBuffer(width, height)
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range height {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), src.Pix[start:start+width*4])
		}

	case *image.RGBA:
		// Premultiplied: divide colour by alpha where it is not opaque.
		for y := range height {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			srow := src.Pix[start : start+width*4]
			drow := buf.RowBytes(y)
			for i := 0; i < len(srow); i += 4 {
				a := srow[i+3]
				switch a {
				case 0xff:
					copy(drow[i:i+4], srow[i:i+4])
				case 0:
					// transparent black
				default:
					drow[i] = unpremul(srow[i], a)
					drow[i+1] = unpremul(srow[i+1], a)
					drow[i+2] = unpremul(srow[i+2], a)
					drow[i+3] = a
				}
			}
		}

	default:
		for y := range height {
			drow := buf.RowBytes(y)
			for x := range width {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				i := x * 4
				drow[i], drow[i+1], drow[i+2], drow[i+3] = c.R, c.G, c.B, c.A
			}
		}
	}

	return buf, nil
}

func unpremul(c, a uint8) uint8 {
	v := (uint32(c)*0xff + uint32(a)/2) / uint32(a)
	if v > 0xff {
		v = 0xff
	}
	return uint8(v)
}
