package skeleton

import (
	"context"
	"image"
	"slices"
)

// Border directions for the thinning sub-passes: north, south, east, west.
var borderDirections = [4]image.Point{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}

var fourNeighbors = [4]image.Point{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}

// Thin returns the topological skeleton of m. The input is not modified.
//
// # Algorithm
//
// Thinning runs rounds of four directional sub-passes. A sub-pass first
// collects the foreground pixels whose neighbor in its direction is
// background, then walks them in raster order and deletes each one that
//   - still has at least two foreground neighbors, so curve ends and isolated
//     pixels are kept, and
//   - is a simple point in the current mask (8-connectivity number of 1), so
//     deleting it cannot split a component, merge two, or open a hole.
//
// Candidates are fixed at the start of a sub-pass, which peels one layer per
// direction per round and keeps the result centered. The simple-point check
// runs against the live mask, so deletions inside a sub-pass cannot combine
// into a topology change.
//
// Rounds repeat until one deletes nothing. That state is a fixed point, so
// Thin(Thin(m)) equals Thin(m).
func Thin(m *Mask) *Mask {
	skel, _ := ThinContext(context.Background(), m)
	return skel
}

// ThinContext is Thin with cancellation. ctx is checked before every round;
// once it is done ThinContext returns a nil mask and ctx.Err().
func ThinContext(ctx context.Context, m *Mask) (*Mask, error) {
	t := newThinner(m.Clone())
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		removed := 0
		for _, d := range borderDirections {
			removed += t.pass(d)
		}
		if removed == 0 {
			return t.m, nil
		}
	}
}

// thinner keeps the contour of the mask being thinned: every foreground pixel
// with a background 4-neighbor. Sub-pass candidates are always contour pixels,
// so a pass walks the contour instead of the whole raster.
type thinner struct {
	m         *Mask
	contour   []int
	onContour []bool
}

func newThinner(m *Mask) *thinner {
	t := &thinner{m: m, onContour: make([]bool, len(m.Pix))}
	for i, v := range m.Pix {
		if v && t.touchesBackground(i) {
			t.onContour[i] = true
			t.contour = append(t.contour, i)
		}
	}
	return t
}

func (t *thinner) touchesBackground(i int) bool {
	x, y := i%t.m.Width, i/t.m.Width
	for _, d := range fourNeighbors {
		if !t.m.At(x+d.X, y+d.Y) {
			return true
		}
	}
	return false
}

func (t *thinner) pass(dir image.Point) int {
	m := t.m

	slices.Sort(t.contour)
	var candidates []int
	for _, i := range t.contour {
		if !m.At(i%m.Width+dir.X, i/m.Width+dir.Y) {
			candidates = append(candidates, i)
		}
	}

	removed := 0
	for _, i := range candidates {
		x, y := i%m.Width, i/m.Width
		r := m.ring(x, y)
		if r.count() < 2 || r.connectivity() != 1 {
			continue
		}
		m.Pix[i] = false
		removed++

		// Foreground 4-neighbors of a deleted pixel now touch background.
		for _, d := range fourNeighbors {
			nx, ny := x+d.X, y+d.Y
			if !m.At(nx, ny) {
				continue
			}
			if j := ny*m.Width + nx; !t.onContour[j] {
				t.onContour[j] = true
				t.contour = append(t.contour, j)
			}
		}
	}

	if removed > 0 {
		kept := t.contour[:0]
		for _, i := range t.contour {
			if m.Pix[i] {
				kept = append(kept, i)
			} else {
				t.onContour[i] = false
			}
		}
		t.contour = kept
	}
	return removed
}

// connectivity returns the Yokoi 8-connectivity number: the number of
// 8-connected foreground runs around the pixel that a deletion would
// separate. Zero means interior or isolated, one means the pixel is simple.
func (r ring) connectivity() int {
	n := 0
	for k := 0; k < 8; k += 2 {
		if !r[k] && (r[k+1] || r[(k+2)%8]) {
			n++
		}
	}
	return n
}
