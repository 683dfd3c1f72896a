package skeleton

import (
	"image"
	"image/color"
)

// Style controls how markers are painted.
type Style struct {
	// Radius of the filled marker disc in pixels.
	Radius int

	// EndpointColor paints endpoint discs.
	EndpointColor color.RGBA

	// BranchColor paints branch point discs.
	BranchColor color.RGBA
}

// DefaultStyle paints radius-2 discs, red for endpoints and blue for branch
// points.
func DefaultStyle() Style {
	return Style{
		Radius:        2,
		EndpointColor: color.RGBA{R: 255, A: 255},
		BranchColor:   color.RGBA{B: 255, A: 255},
	}
}

var (
	skeletonColor   = color.RGBA{255, 255, 255, 255}
	backgroundColor = color.RGBA{0, 0, 0, 255}
)

// Render draws the skeleton white on an opaque black canvas.
func Render(skel *Mask) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, skel.Width, skel.Height))
	for y := 0; y < skel.Height; y++ {
		for x := 0; x < skel.Width; x++ {
			c := backgroundColor
			if skel.Pix[y*skel.Width+x] {
				c = skeletonColor
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Annotate renders the skeleton and burns a filled disc in for every marker,
// in slice order. Where discs overlap the later one wins.
//
// Disc pixels are clipped to the interior window, so the outermost rows and
// columns only ever show the skeleton itself.
func Annotate(skel *Mask, markers []Marker, style Style) *image.RGBA {
	img := Render(skel)
	interior := image.Rectangle{
		Min: image.Pt(1, 1),
		Max: image.Pt(skel.Width-1, skel.Height-1),
	}

	for _, m := range markers {
		c := style.EndpointColor
		if m.Kind == Branch {
			c = style.BranchColor
		}
		fillDisc(img, interior, m.X, m.Y, style.Radius, c)
	}
	return img
}

// fillDisc paints every pixel within radius of (cx, cy) that lies inside clip.
func fillDisc(img *image.RGBA, clip image.Rectangle, cx, cy, radius int, c color.RGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !(image.Point{X: x, Y: y}).In(clip) {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
