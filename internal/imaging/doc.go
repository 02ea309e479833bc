// Package imaging provides the pixel-level operations behind the line
// detector: image loading and caching, grayscale/gradient computation,
// edge intensity and thresholding, region cropping, and overlay
// rendering of detection results.
//
// All operations work with standard Go image.Image types or with the
// raster package's flat scalar fields. Coordinates are 0-based with the
// origin at the top-left corner, X increasing rightward and Y downward.
//
// # Pipeline Position
//
// The detection pipeline consumes this package front to back:
//
//  1. ImageCache / Load: decode once, reuse across tool calls
//  2. Smooth + GrayField: blurred luminance field
//  3. SobelGradients: signed derivative pair
//  4. EdgeIntensityAbs + Threshold: binary edge mask
//  5. (hough + detection packages take over)
//  6. RenderLineOverlay: visualize the detected lines
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The field-based operations
// write only into caller-supplied buffers and are safe to run
// concurrently on disjoint buffers.
//
// # Error Handling
//
// Functions return errors for shape mismatches between gradient fields,
// crop regions outside the image, and encoding failures. Thresholding
// and overlay rendering on empty input degrade gracefully.
package imaging
