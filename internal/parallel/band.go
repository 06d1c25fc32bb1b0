package parallel

// Band is the half-open row range [Y0, Y1) of an image.
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides height rows into at most n contiguous, non-empty bands
// whose heights differ by at most one row. The bands cover [0, height) in order.
func SplitRows(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([]Band, n)
	base, extra := height/n, height%n
	y := 0
	for i := range n {
		rows := base
		if i < extra {
			rows++
		}
		bands[i] = Band{Y0: y, Y1: y + rows}
		y += rows
	}
	return bands
}

// Batches groups bands into consecutive slices of at most size bands each.
func Batches(bands []Band, size int) [][]Band {
	if size <= 0 {
		size = 1
	}
	out := make([][]Band, 0, (len(bands)+size-1)/size)
	for len(bands) > 0 {
		n := min(size, len(bands))
		out = append(out, bands[:n:n])
		bands = bands[n:]
	}
	return out
}
