// Package detection orchestrates the straight-line detection pipeline.
//
// A Detector owns the scratch buffers and post-processing state for the
// full chain: gradient pair -> edge intensity -> binary mask -> Hough
// accumulation in foot-of-normal space -> non-maximum suppression ->
// parametric lines -> similarity merge -> top-N prune. Data flows
// strictly forward; no stage re-enters an earlier one.
//
// # Configuration
//
// All detection parameters are fixed at construction through Config and
// validated there, so nonsensical values fail New rather than Detect.
// The two merge tolerances (MergeAngle, MergeDistance) are the
// exception: they are plain fields on the Detector and may be tuned
// between calls.
//
// # Lifecycle and Reuse
//
// Per-call intermediates (intensity map, binary mask, accumulator) are
// owned by the Detector and rebuilt from scratch on every Detect call,
// reusing backing storage for speed. Because of that reuse a single
// Detector is not reentrant: concurrent Detect calls on one instance
// need external serialization. Independent Detector instances share no
// state and run fully in parallel.
//
// # Results
//
// After a successful Detect, accessors expose the ordered line list
// (descending vote intensity), per-line vote counts, the edge-intensity
// field, and the binary mask. A Detect call that fails validation
// leaves previously published results untouched.
//
// # Image-Level Entry Point
//
// DetectImage wraps the gradient-level Detect with the standard image
// frontend: optional Gaussian smoothing, grayscale conversion, and
// Sobel derivatives, then formats the detected lines as JSON-ready
// records with clipped endpoints, angles, and sampled midpoint colors.
//
// # Coordinate System
//
// Standard image convention: origin (0,0) top-left, X rightward, Y
// downward. The Hough reference origin sits at the image center.
package detection
