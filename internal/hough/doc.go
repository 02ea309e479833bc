// Package hough implements a Hough transform for straight-line detection
// using the foot-of-normal parametrization, plus the post-processing that
// collapses near-duplicate detections.
//
// # Foot of Normal
//
// A line is parametrized by the point on it closest to a reference origin
// (the "foot" of the perpendicular dropped from the origin onto the
// line). The parameter space is the image plane itself: the accumulator
// has the same dimensions as the input image and the cell at (x, y)
// counts votes for the line whose foot is (x, y). The origin sits at the
// image center, which avoids the singularities and uneven sampling that
// polar (rho, theta) parametrizations suffer near the accumulator center.
//
// Each binary edge pixel votes once: its local gradient gives the line
// normal, the pixel is projected onto that normal, and the cell nearest
// the resulting foot point is incremented. Feet inside a small exclusion
// box around the origin are discarded: lines passing very near the
// origin are numerically unstable in this parametrization and produce
// spurious peaks.
//
// # Extraction and Pruning
//
// Peaks are pulled from the accumulator with a candidate-restricted
// non-maximum suppression (only voted cells are examined) and mapped back
// to parametric lines in image coordinates. PruneMerge then clusters
// near-parallel, near-coincident lines, keeps the strongest member of
// each cluster, and truncates to the caller's line budget.
package hough
