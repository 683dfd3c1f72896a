// Package imaging converts between encoded raster bytes and the in-memory
// buffers the skeleton pipeline works on.
//
// Decoding accepts any registered raster format (PNG, JPEG, GIF, BMP, TIFF and
// WebP) and always produces a single-channel *image.Gray intensity buffer with
// its origin at (0,0). Encoding always produces PNG.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Error Handling
//
// Failures are reported by wrapping one of the package sentinel errors, so
// callers can branch with errors.Is:
//   - ErrDecode: the bytes are not a decodable image
//   - ErrImageTooLarge: the image header reports more pixels than allowed
//   - ErrEncode: PNG encoding of the result failed
//
// # Thread Safety
//
// Every function is stateless and safe to call concurrently on distinct
// buffers.
package imaging
