package skeleton

import "image"

// Threshold is the binarization cutoff. Intensities at or below it are
// foreground.
const Threshold = 127

// Mask is a row-major boolean raster. Reads outside the raster are background.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask returns an all-background mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// Binarize thresholds a grayscale image with inverted polarity: pixels whose
// intensity is <= Threshold become foreground.
func Binarize(gray *image.Gray) *Mask {
	bounds := gray.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		row := gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < m.Width; x++ {
			m.Pix[y*m.Width+x] = row[x] <= Threshold
		}
	}
	return m
}

// At reports whether (x, y) is foreground.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set changes (x, y). Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{Width: m.Width, Height: m.Height, Pix: make([]bool, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// ring holds the 8 neighbors of a pixel counter-clockwise starting east:
// E, NE, N, NW, W, SW, S, SE.
type ring [8]bool

var ringOffsets = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

func (m *Mask) ring(x, y int) ring {
	var r ring
	for i, d := range ringOffsets {
		r[i] = m.At(x+d.X, y+d.Y)
	}
	return r
}

func (r ring) count() int {
	n := 0
	for _, v := range r {
		if v {
			n++
		}
	}
	return n
}

// NeighborCount returns how many of the 8 pixels around (x, y) are foreground.
func (m *Mask) NeighborCount(x, y int) int {
	return m.ring(x, y).count()
}
