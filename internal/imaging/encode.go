package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// EncodePNG writes img to w as PNG.
//
// Errors wrap ErrEncode. Nothing useful can be recovered from a failed
// encode, so callers should treat it as a server error.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG,
		imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodePNGBytes is EncodePNG into a fresh buffer.
func EncodePNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
