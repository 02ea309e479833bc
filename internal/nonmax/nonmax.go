package nonmax

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

// Peak is a detected local extremum: a cell coordinate and its value.
type Peak struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float32 `json:"value"`
}

// Config specifies extraction parameters. All fields are required; there
// are no silently substituted defaults.
type Config struct {
	// Radius of the square dominance neighborhood. A cell is compared
	// against every cell within Chebyshev distance Radius. Must be >= 0.
	Radius int

	// Threshold a peak's magnitude must reach: maxima need value >=
	// Threshold, minima need value <= -Threshold.
	Threshold float32

	// IgnoreBorder excludes cells closer than this to any field edge.
	// Must be >= 0.
	IgnoreBorder int

	// Strict selects the strictly-largest dominance rule. The default
	// (false) is the relaxed largest-or-equal rule.
	Strict bool

	// Concurrent splits candidate processing across CPUs. Output is
	// identical to the sequential scan.
	Concurrent bool
}

// Validate checks the configuration for nonsensical values.
func (c Config) Validate() error {
	if c.Radius < 0 {
		return fmt.Errorf("invalid config: radius %d must be >= 0", c.Radius)
	}
	if c.IgnoreBorder < 0 {
		return fmt.Errorf("invalid config: ignore border %d must be >= 0", c.IgnoreBorder)
	}
	return nil
}

// Extractor finds local minima and maxima in a scalar field.
//
// An Extractor is stateless between calls and safe for concurrent use on
// different fields.
type Extractor struct {
	cfg    Config
	search Search
}

// NewExtractor creates an extractor with the dominance rule selected by
// cfg.Strict. Returns an error for invalid configuration.
func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var s Search
	if cfg.Strict {
		s = strictSearch{}
	} else {
		s = relaxedSearch{}
	}
	return &Extractor{cfg: cfg, search: s}, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Process examines the candidate cells and returns all qualifying minima
// and maxima.
//
// A nil candidate list suppresses that polarity: passing nil for
// candMin yields zero minima without affecting maxima, and vice versa.
// The returned slices are never nil.
func (e *Extractor) Process(f *raster.FieldF32, candMin, candMax []raster.Point) (minima, maxima []Peak) {
	minima = e.scan(f, candMin, false)
	maxima = e.scan(f, candMax, true)
	return minima, maxima
}

// AllCells returns every cell of a width x height field at least border
// cells from each edge, in row-major order. Useful for exhaustive
// extraction when no sparse candidate list is available.
func AllCells(width, height, border int) []raster.Point {
	pts := make([]raster.Point, 0, width*height)
	for y := border; y < height-border; y++ {
		for x := border; x < width-border; x++ {
			pts = append(pts, raster.Point{X: x, Y: y})
		}
	}
	return pts
}

// concurrentMinimum is the candidate count below which chunking overhead
// is not worth paying.
const concurrentMinimum = 2048

func (e *Extractor) scan(f *raster.FieldF32, candidates []raster.Point, findMax bool) []Peak {
	found := []Peak{}
	if candidates == nil {
		return found
	}

	if e.cfg.Concurrent && len(candidates) >= concurrentMinimum {
		return e.scanConcurrent(f, candidates, findMax)
	}
	return e.scanChunk(f, candidates, findMax, found)
}

// scanChunk appends qualifying peaks from the candidate slice to dst.
func (e *Extractor) scanChunk(f *raster.FieldF32, candidates []raster.Point, findMax bool, dst []Peak) []Peak {
	border := e.cfg.IgnoreBorder
	radius := e.cfg.Radius

	for _, c := range candidates {
		if c.X < border || c.X >= f.Width-border || c.Y < border || c.Y >= f.Height-border {
			continue
		}

		v := f.Get(c.X, c.Y)
		if findMax {
			if v < e.cfg.Threshold {
				continue
			}
		} else {
			if v > -e.cfg.Threshold {
				continue
			}
		}

		// Dominance window clipped to the field
		x0, y0 := c.X-radius, c.Y-radius
		x1, y1 := c.X+radius, c.Y+radius
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 > f.Width-1 {
			x1 = f.Width - 1
		}
		if y1 > f.Height-1 {
			y1 = f.Height - 1
		}

		var wins bool
		if findMax {
			wins = e.search.IsMaximum(f, c.X, c.Y, x0, y0, x1, y1)
		} else {
			wins = e.search.IsMinimum(f, c.X, c.Y, x0, y0, x1, y1)
		}
		if wins {
			dst = append(dst, Peak{X: c.X, Y: c.Y, Value: v})
		}
	}
	return dst
}

// scanConcurrent splits the candidate list into per-CPU chunks and merges
// the per-chunk results in chunk order, matching the sequential output.
func (e *Extractor) scanConcurrent(f *raster.FieldF32, candidates []raster.Point, findMax bool) []Peak {
	workers := runtime.NumCPU()
	if workers > len(candidates) {
		workers = len(candidates)
	}

	chunkSize := (len(candidates) + workers - 1) / workers
	results := make([][]Peak, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if hi > len(candidates) {
			hi = len(candidates)
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(w int, chunk []raster.Point) {
			defer wg.Done()
			results[w] = e.scanChunk(f, chunk, findMax, nil)
		}(w, candidates[lo:hi])
	}
	wg.Wait()

	merged := []Peak{}
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}
