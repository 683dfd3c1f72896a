// Package skeleton reduces dark shapes in a grayscale image to 1-pixel-wide
// centerlines and marks where those centerlines end and branch.
//
// # Pipeline
//
// A request flows through these stages, each a plain function over
// request-local buffers:
//
//  1. Binarize: intensity <= 127 becomes foreground (dark strokes on a light
//     background are the shapes of interest)
//  2. Thin: topology-preserving directional thinning to a fixed point
//  3. Classify: every interior skeleton pixel with exactly one skeleton
//     neighbor is an endpoint, with three or more it is a branch point
//  4. Annotate: white skeleton on black, with a filled disc per marker
//
// Pipeline wires the stages together with decoding and PNG encoding from the
// imaging package.
//
// # Connectivity
//
// Foreground uses 8-connectivity and background 4-connectivity. Thinning never
// changes the number of 8-connected foreground components or the number of
// holes, and running it on its own output changes nothing.
//
// # Border Pixels
//
// The outermost row and column on each side are never classified, since a full
// 3x3 neighborhood is required, and marker discs are clipped so that they do
// not paint those rows and columns either.
//
// # Thread Safety
//
// There is no package state. Pipeline is a value that can be shared by
// concurrent requests; every call allocates its own buffers.
package skeleton
