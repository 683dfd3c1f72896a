package skeleton

import "image"

// Topology helpers used by the thinning property tests.

// equal reports whether both masks have the same size and pixels.
func (m *Mask) equal(o *Mask) bool {
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for i, v := range m.Pix {
		if o.Pix[i] != v {
			return false
		}
	}
	return true
}

// components counts 8-connected foreground components.
func (m *Mask) components() int {
	return m.label(true, ringOffsets[:])
}

// holes counts 4-connected background regions that do not touch the border.
func (m *Mask) holes() int {
	// Background outside the raster joins every region touching the border,
	// so label on a copy padded by one pixel and discard the outer region.
	padded := NewMask(m.Width+2, m.Height+2)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			padded.Set(x+1, y+1, m.At(x, y))
		}
	}
	return padded.label(false, fourNeighbors[:]) - 1
}

// label counts connected regions of pixels equal to value.
func (m *Mask) label(value bool, steps []image.Point) int {
	seen := make([]bool, len(m.Pix))
	stack := make([]int, 0, 64)
	regions := 0

	for start, v := range m.Pix {
		if v != value || seen[start] {
			continue
		}
		regions++
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%m.Width, i/m.Width
			for _, d := range steps {
				nx, ny := x+d.X, y+d.Y
				if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height {
					continue
				}
				j := ny*m.Width + nx
				if m.Pix[j] == value && !seen[j] {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return regions
}
