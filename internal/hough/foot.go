package hough

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ironsheep/line-tools-mcp/internal/nonmax"
	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

// FootTransform accumulates edge-pixel votes in foot-of-normal space and
// extracts the dominant lines.
//
// The accumulator and candidate list are owned by the transform and
// reused across calls; a FootTransform is therefore not safe for
// concurrent Transform calls, though independent instances are fully
// isolated from each other.
type FootTransform struct {
	extractor *nonmax.Extractor

	// Feet inside a Chebyshev box of this half-width around the origin
	// are rejected during voting.
	minDistanceFromOrigin int

	// Concurrent enables row-parallel voting with per-worker partial
	// accumulators merged deterministically.
	concurrent bool

	accumulator *raster.FieldF32
	candidates  []raster.Point
	originX     int
	originY     int
}

// NewFootTransform creates a transform that extracts peaks with the given
// extractor. minDistanceFromOrigin must be >= 0.
func NewFootTransform(extractor *nonmax.Extractor, minDistanceFromOrigin int, concurrent bool) (*FootTransform, error) {
	if extractor == nil {
		return nil, fmt.Errorf("invalid config: extractor must not be nil")
	}
	if minDistanceFromOrigin < 0 {
		return nil, fmt.Errorf("invalid config: min distance from origin %d must be >= 0", minDistanceFromOrigin)
	}
	return &FootTransform{
		extractor:             extractor,
		minDistanceFromOrigin: minDistanceFromOrigin,
		concurrent:            concurrent,
		accumulator:           raster.NewFieldF32(1, 1),
	}, nil
}

// IsThreadSafe reports whether the voting pass may execute with internal
// parallelism without racing on accumulator cells. The partial-accumulator
// design never shares a cell between workers, so this always holds.
func (t *FootTransform) IsThreadSafe() bool {
	return true
}

// Accumulator exposes the vote grid from the most recent Transform call.
// Read-only to callers.
func (t *FootTransform) Accumulator() *raster.FieldF32 {
	return t.accumulator
}

// Candidates returns the row-major list of cells that received at least
// one vote in the most recent Transform call.
func (t *FootTransform) Candidates() []raster.Point {
	return t.candidates
}

// Origin returns the reference origin used by the most recent Transform
// call (the image center).
func (t *FootTransform) Origin() (x, y int) {
	return t.originX, t.originY
}

// Transform casts one vote per edge pixel into the accumulator.
//
// derivX and derivY are the image derivatives; binary marks the edge
// pixels that vote. All three must share the same dimensions. The
// accumulator is zeroed first, so repeated calls on the same input are
// idempotent.
func (t *FootTransform) Transform(derivX, derivY *raster.FieldF32, binary *raster.Mask) error {
	if err := raster.CheckSameShape(derivX, derivY); err != nil {
		return err
	}
	if binary.Width != derivX.Width || binary.Height != derivX.Height {
		return fmt.Errorf("shape mismatch: binary %dx%d vs gradient %dx%d",
			binary.Width, binary.Height, derivX.Width, derivX.Height)
	}

	w, h := binary.Width, binary.Height
	t.accumulator.Reshape(w, h)
	t.accumulator.Fill(0)
	t.originX = w / 2
	t.originY = h / 2

	if t.concurrent {
		t.voteRowsConcurrent(derivX, derivY, binary)
	} else {
		t.voteRows(derivX, derivY, binary, 0, h, t.accumulator)
	}

	// Candidate cells in deterministic row-major order, independent of
	// how the votes were cast.
	t.candidates = t.candidates[:0]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if t.accumulator.Data[y*w+x] > 0 {
				t.candidates = append(t.candidates, raster.Point{X: x, Y: y})
			}
		}
	}

	return nil
}

// voteRows accumulates votes for rows [y0, y1) into acc.
func (t *FootTransform) voteRows(derivX, derivY *raster.FieldF32, binary *raster.Mask, y0, y1 int, acc *raster.FieldF32) {
	w := binary.Width
	for y := y0; y < y1; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			if !binary.Data[row+x] {
				continue
			}
			t.vote(x, y, derivX.Data[row+x], derivY.Data[row+x], acc)
		}
	}
}

// vote projects the pixel onto its gradient direction and increments the
// cell at the resulting foot of the normal.
func (t *FootTransform) vote(x, y int, gx, gy float32, acc *raster.FieldF32) {
	if gx == 0 && gy == 0 {
		return
	}

	// Origin-centered coordinates minimize projection error, which grows
	// with distance from the origin.
	rx := float32(x - t.originX)
	ry := float32(y - t.originY)

	v := (rx*gx + ry*gy) / (gx*gx + gy*gy)

	x0 := int(v*gx) + t.originX
	y0 := int(v*gy) + t.originY

	if x0 < 0 || x0 >= acc.Width || y0 < 0 || y0 >= acc.Height {
		return
	}
	if abs(x0-t.originX) >= t.minDistanceFromOrigin || abs(y0-t.originY) >= t.minDistanceFromOrigin {
		acc.Data[y0*acc.Width+x0]++
	}
}

// voteRowsConcurrent splits rows across workers, each voting into its own
// partial accumulator, then sums the partials into t.accumulator. Summing
// is order-independent, so the result matches the sequential pass.
func (t *FootTransform) voteRowsConcurrent(derivX, derivY *raster.FieldF32, binary *raster.Mask) {
	w, h := binary.Width, binary.Height
	workers := runtime.NumCPU()
	if workers > h {
		workers = h
	}

	partials := make([]*raster.FieldF32, workers)
	rowsPer := (h + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		y0 := i * rowsPer
		y1 := y0 + rowsPer
		if y1 > h {
			y1 = h
		}
		if y0 >= y1 {
			break
		}

		wg.Add(1)
		go func(i, y0, y1 int) {
			defer wg.Done()
			acc := raster.NewFieldF32(w, h)
			acc.Fill(0)
			t.voteRows(derivX, derivY, binary, y0, y1, acc)
			partials[i] = acc
		}(i, y0, y1)
	}
	wg.Wait()

	for _, p := range partials {
		if p == nil {
			continue
		}
		for i, v := range p.Data {
			t.accumulator.Data[i] += v
		}
	}
}

// ExtractLines runs non-maximum suppression over the voted cells and maps
// each peak back to a parametric line.
//
// The returned slices are parallel: intensities[i] is the vote count
// behind lines[i]. Both are empty, never nil, when nothing qualifies.
func (t *FootTransform) ExtractLines() (lines []Line, intensities []float32) {
	lines = []Line{}
	intensities = []float32{}

	// Minima are meaningless in a vote histogram; the nil candidate list
	// suppresses that polarity.
	_, peaks := t.extractor.Process(t.accumulator, nil, t.candidates)

	for _, p := range peaks {
		relX := float32(p.X - t.originX)
		relY := float32(p.Y - t.originY)

		lines = append(lines, Line{
			X:      float32(p.X),
			Y:      float32(p.Y),
			SlopeX: -relY,
			SlopeY: relX,
		})
		intensities = append(intensities, p.Value)
	}

	return lines, intensities
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
