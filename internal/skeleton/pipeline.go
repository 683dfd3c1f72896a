package skeleton

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/skeleton-api/internal/imaging"
)

// Pipeline turns uploaded image bytes into an annotated skeleton.
//
// The zero value is not useful; start from NewPipeline.
type Pipeline struct {
	// Style controls marker radius and colors.
	Style Style

	// CloseRadius enables a morphological close of dark regions before
	// binarization when positive. It bridges hairline breaks in strokes.
	CloseRadius float64

	// MaxPixels rejects images whose header reports more pixels. Zero
	// disables the limit.
	MaxPixels int

	// Debug enables per-stage log lines.
	Debug bool
}

// NewPipeline returns a pipeline with the default style and no pre-filter.
func NewPipeline() Pipeline {
	return Pipeline{Style: DefaultStyle()}
}

// Result is everything a request produces.
type Result struct {
	// Image is the annotated skeleton.
	Image *image.RGBA

	// PNG is Image encoded as PNG. Empty when produced by ProcessImage.
	PNG []byte

	// Markers lists endpoints and branch points in scan order.
	Markers []Marker

	// Endpoints and Branches count Markers by kind.
	Endpoints int
	Branches  int

	// Info describes the upload. Nil when produced by ProcessImage.
	Info *imaging.ImageInfo
}

// Process decodes data, skeletonizes it and encodes the annotated PNG.
//
// Errors wrap imaging.ErrDecode, imaging.ErrImageTooLarge,
// imaging.ErrEncode or ctx.Err(). On error no partial result is returned.
func (p Pipeline) Process(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gray, info, err := imaging.Decode(data, p.MaxPixels)
	if err != nil {
		return nil, err
	}
	if p.Debug {
		log.Printf("Decoded %s image: %dx%d, %s, %d bytes",
			info.Format, info.Width, info.Height, info.ColorDepth, info.SizeBytes)
	}

	res, err := p.ProcessImage(ctx, gray)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNGBytes(res.Image)
	if err != nil {
		return nil, err
	}
	res.PNG = encoded
	res.Info = info
	return res, nil
}

// ProcessImage runs binarize, thin, classify and annotate on a decoded image.
// Thinning stops early with ctx.Err() once ctx is done.
func (p Pipeline) ProcessImage(ctx context.Context, gray *image.Gray) (*Result, error) {
	if p.CloseRadius > 0 {
		gray = imaging.CloseDarkGaps(gray, p.CloseRadius)
	}

	mask := Binarize(gray)
	skel, err := ThinContext(ctx, mask)
	if err != nil {
		return nil, fmt.Errorf("failed to thin %dx%d mask: %w", mask.Width, mask.Height, err)
	}
	markers := Classify(skel)
	endpoints, branches := CountKinds(markers)

	if p.Debug {
		log.Printf("Thinned %d foreground pixels to %d, %d endpoints, %d branch points",
			mask.Count(), skel.Count(), endpoints, branches)
	}

	return &Result{
		Image:     Annotate(skel, markers, p.Style),
		Markers:   markers,
		Endpoints: endpoints,
		Branches:  branches,
	}, nil
}
