// Package nonmax extracts local extrema from dense scalar fields.
//
// The extractor enumerates cells that dominate a square neighborhood of a
// configurable radius, subject to a value threshold and a border exclusion.
// It is used to pull peaks out of a Hough accumulator, but operates on any
// raster.FieldF32 and detects both minima and maxima.
//
// # Candidate Restriction
//
// Process takes explicit candidate lists rather than scanning every cell.
// This lets sparse producers (such as a vote accumulator that knows which
// cells were touched) avoid a full-field scan. Use AllCells to build an
// exhaustive list when no better information is available.
//
// A nil candidate list for one polarity suppresses detection of that
// polarity entirely. This is a defined no-op, not an error: passing a nil
// minima list returns zero minima while maxima detection is unaffected.
// Returned slices are always non-nil, empty when nothing qualifies.
//
// # Dominance Rules
//
// Two interchangeable neighborhood rules are available, selected at
// construction through the Config.Strict flag:
//
//   - Relaxed (default): a cell qualifies when no neighbor holds a larger
//     value. Plateau cells tie and may all be reported.
//   - Strict: a cell qualifies only when strictly larger than every
//     neighbor. Plateaus report nothing.
//
// Maxima must reach +Threshold and minima must reach -Threshold.
//
// # Determinism
//
// Output order follows candidate order. The concurrent mode splits the
// candidate list into chunks and concatenates per-chunk results in chunk
// order, so sequential and concurrent runs produce identical output for
// identical input.
package nonmax
