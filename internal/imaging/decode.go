package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Sentinel errors reported by this package.
var (
	ErrDecode        = errors.New("failed to decode image")
	ErrEncode        = errors.New("failed to encode image")
	ErrImageTooLarge = errors.New("image exceeds pixel limit")
)

// ImageInfo contains metadata about a decoded upload.
type ImageInfo struct {
	// Width is the image width in pixels, after EXIF orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after EXIF orientation is applied.
	Height int `json:"height"`

	// Format is the format name reported by the registered decoder:
	// "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the source image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the encoded upload.
	SizeBytes int64 `json:"size_bytes"`
}

// Decode turns encoded image bytes into a grayscale intensity buffer.
//
// Parameters:
//   - data: The encoded image. Any registered format is accepted.
//   - maxPixels: Upper bound on width*height taken from the image header.
//     Zero or negative disables the check.
//
// Returns:
//   - *image.Gray: Intensity values in [0,255], bounds starting at (0,0).
//   - *ImageInfo: Metadata about the upload.
//   - error: Wraps ErrDecode or ErrImageTooLarge.
//
// # Grayscale Conversion
//
// Color images are reduced to luminance with ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B). JPEG EXIF orientation is honored, so a
// rotated photo is skeletonized the way it is displayed.
//
// The pixel limit is checked against the header before the full decode, so an
// oversized image is rejected without allocating its pixel buffer.
func Decode(data []byte, maxPixels int) (*image.Gray, *ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if maxPixels > 0 && cfg.Width*cfg.Height > maxPixels {
		return nil, nil, fmt.Errorf("%w: %dx%d is more than %d pixels",
			ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	gray := ToGray(img)
	bounds := gray.Bounds()

	return gray, &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  int64(len(data)),
	}, nil
}

// ToGray converts any image to an 8-bit luminance buffer anchored at (0,0).
func ToGray(img image.Image) *image.Gray {
	// imaging.Grayscale keeps R=G=B, so the red channel is the luminance.
	nrgba := imaging.Grayscale(img)
	bounds := nrgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+bounds.Dx()*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+bounds.Dx()]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return gray
}
