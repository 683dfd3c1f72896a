package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBarWithGap draws a dark vertical bar on white with a one-row break.
func newBarWithGap(width, height, x1, x2, gapY int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for y := 2; y < height-2; y++ {
		if y == gapY {
			continue
		}
		for x := x1; x <= x2; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	return img
}

func TestCloseDarkGaps(t *testing.T) {
	img := newBarWithGap(21, 21, 8, 12, 10)

	closed := CloseDarkGaps(img, 1)

	require.Equal(t, img.Bounds(), closed.Bounds())
	assert.LessOrEqual(t, closed.GrayAt(10, 10).Y, uint8(127), "gap at (10,10) should be closed")
	assert.Greater(t, closed.GrayAt(2, 10).Y, uint8(127), "background at (2,10) should stay light")
	assert.LessOrEqual(t, closed.GrayAt(10, 5).Y, uint8(127), "bar at (10,5) should stay dark")
}

func TestCloseDarkGaps_ZeroRadius(t *testing.T) {
	img := newBarWithGap(10, 10, 4, 5, 5)
	assert.Same(t, img, CloseDarkGaps(img, 0), "zero radius should return the input unchanged")
}
