package skeleton

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/skeleton-api/internal/imaging"
)

// newDrawing returns a white grayscale canvas with dark rectangles drawn on it.
func newDrawing(width, height int, rects ...image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 20})
			}
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// rgb8 returns the 8-bit channels of the pixel at (x, y).
func rgb8(img image.Image, x, y int) [3]uint32 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func TestPipeline_Process_ThickLine(t *testing.T) {
	data := pngBytes(t, newDrawing(40, 20, image.Rect(5, 8, 35, 13)))

	res, err := NewPipeline().Process(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Endpoints)
	assert.Zero(t, res.Branches)
	require.NotNil(t, res.Info)
	assert.Equal(t, "png", res.Info.Format)

	out, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err, "result is not a valid PNG")
	assert.Equal(t, image.Rect(0, 0, 40, 20), out.Bounds())

	// The centerline runs along row 10 from x=6 to x=33.
	assert.Equal(t, [3]uint32{255, 0, 0}, rgb8(out, 6, 10))
	assert.Equal(t, [3]uint32{255, 0, 0}, rgb8(out, 33, 10))
	assert.Equal(t, [3]uint32{255, 255, 255}, rgb8(out, 20, 10))
	assert.Equal(t, [3]uint32{0, 0, 0}, rgb8(out, 20, 5))
}

func TestPipeline_Process_Blank(t *testing.T) {
	data := pngBytes(t, newDrawing(33, 17))

	res, err := NewPipeline().Process(context.Background(), data)
	require.NoError(t, err)
	assert.Empty(t, res.Markers)

	out, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err, "result is not a valid PNG")
	require.Equal(t, image.Rect(0, 0, 33, 17), out.Bounds())
	for y := 0; y < 17; y++ {
		for x := 0; x < 33; x++ {
			require.Equal(t, [3]uint32{0, 0, 0}, rgb8(out, x, y), "blank result pixel (%d,%d)", x, y)
		}
	}
}

func TestPipeline_Process_DecodeError(t *testing.T) {
	res, err := NewPipeline().Process(context.Background(), []byte("\x89PNG\r\n\x1a\nbroken"))
	assert.ErrorIs(t, err, imaging.ErrDecode)
	assert.Nil(t, res, "failed Process should not return a result")
}

func TestPipeline_Process_PixelLimit(t *testing.T) {
	p := NewPipeline()
	p.MaxPixels = 100

	_, err := p.Process(context.Background(), pngBytes(t, newDrawing(20, 20)))
	assert.ErrorIs(t, err, imaging.ErrImageTooLarge)
}

func TestPipeline_Process_Cancelled(t *testing.T) {
	data := pngBytes(t, newDrawing(40, 20, image.Rect(5, 8, 35, 13)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewPipeline().Process(ctx, data)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestPipeline_ProcessImage_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewPipeline().ProcessImage(ctx, newDrawing(64, 64, image.Rect(4, 4, 60, 60)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestPipeline_ProcessImage_Junctions(t *testing.T) {
	tests := []struct {
		name          string
		img           *image.Gray
		wantEndpoints int
		wantBranches  int
		junction      image.Point
	}{
		{
			// Bar rows 3..7, stem columns 13..17.
			name:          "thick T",
			img:           newDrawing(31, 24, image.Rect(3, 3, 28, 8), image.Rect(13, 8, 18, 21)),
			wantEndpoints: 3,
			wantBranches:  1,
			junction:      image.Pt(15, 6),
		},
		{
			// A thick plus thins to a 4-connected cross whose junction
			// neighborhood is reported as branch points.
			name:          "thick plus",
			img:           newDrawing(25, 25, image.Rect(10, 3, 15, 22), image.Rect(3, 10, 22, 15)),
			wantEndpoints: 4,
			wantBranches:  5,
			junction:      image.Pt(12, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewPipeline().ProcessImage(context.Background(), tt.img)
			require.NoError(t, err)

			assert.Equal(t, tt.wantEndpoints, res.Endpoints, "endpoints")
			assert.Equal(t, tt.wantBranches, res.Branches, "branch points")
			assert.Contains(t, res.Markers, Marker{X: tt.junction.X, Y: tt.junction.Y, Kind: Branch})
			assert.Equal(t, blue, res.Image.RGBAAt(tt.junction.X, tt.junction.Y), "junction color")
			assert.Nil(t, res.PNG, "ProcessImage should not encode")
			assert.Nil(t, res.Info, "ProcessImage should not describe an upload")
		})
	}
}

func TestPipeline_CloseRadius(t *testing.T) {
	// A 5px bar broken by a one-row gap: two strokes without closing, one
	// stroke with it.
	img := newDrawing(21, 31, image.Rect(8, 2, 13, 15), image.Rect(8, 16, 13, 29))

	open, err := NewPipeline().ProcessImage(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, 4, open.Endpoints, "without closing")

	p := NewPipeline()
	p.CloseRadius = 1
	closed, err := p.ProcessImage(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, 2, closed.Endpoints, "with closing")
}
