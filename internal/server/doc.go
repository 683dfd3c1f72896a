// Package server implements the HTTP boundary of the skeletonization service.
//
// The server accepts an uploaded raster image, runs it through a
// skeleton.Pipeline and streams back the annotated skeleton as a PNG.
//
// # Routes
//
//   - GET /: Liveness check
//   - GET /health: Same as GET /
//   - POST /skeletonize: Multipart upload, returns image/png
//
// The upload is read from the "file" form field. The "image" field is
// accepted when "file" is absent. Setting the "close" form value to true
// bridges hairline gaps in dark strokes before thinning.
//
// Successful responses carry the marker counts and the detected input
// format in the X-Skeleton-Endpoints, X-Skeleton-Branches and
// X-Image-Format headers.
//
// # Error Handling
//
// Errors are returned as JSON objects of the form {"error": "..."}:
//   - 400: Malformed multipart body or no file field
//   - 413: Upload larger than MaxUploadBytes, or image larger than MaxPixels
//   - 422: Bytes could not be decoded as an image
//   - 500: Encoding the result failed
//   - 504: Processing ran past RequestTimeout
//
// # CORS
//
// Cross-origin requests are allowed from the configured origins only, with
// credentials. Production origins are added when the environment is
// "production".
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
