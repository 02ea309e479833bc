package detection

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/line-tools-mcp/internal/hough"
	"github.com/ironsheep/line-tools-mcp/internal/imaging"
	"github.com/ironsheep/line-tools-mcp/internal/nonmax"
	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

var (
	// ErrShapeMismatch reports gradient inputs of different dimensions.
	// The failed call publishes nothing; earlier results stay valid.
	ErrShapeMismatch = errors.New("gradient shape mismatch")

	// ErrInvalidConfig reports nonsensical construction parameters.
	ErrInvalidConfig = errors.New("invalid detector configuration")
)

// Config carries the detection parameters fixed at construction.
// Every field is required; New rejects values that make no sense.
type Config struct {
	// LocalMaxRadius is the non-maximum suppression radius in
	// accumulator cells. A peak must dominate a square neighborhood of
	// this radius. Must be >= 0. Try 5.
	LocalMaxRadius int

	// MinCounts is the minimum number of votes a peak needs. Must be
	// > 0. Try 5.
	MinCounts int

	// MinDistanceFromOrigin excludes accumulator cells this close to
	// the transform origin, where the parametrization is unstable.
	// Must be >= 0. Try 5.
	MinDistanceFromOrigin int

	// EdgeThreshold classifies a pixel as edge when its gradient
	// intensity (|dx|+|dy|) is strictly above this value. Must be
	// >= 0. Try 30.
	EdgeThreshold float32

	// MaxLines caps the number of returned lines. Must be > 0.
	MaxLines int

	// Concurrent enables row-parallel voting and chunked peak
	// extraction. Output is identical either way.
	Concurrent bool
}

// Validate checks every field. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.LocalMaxRadius < 0 {
		return fmt.Errorf("%w: local max radius %d must be >= 0", ErrInvalidConfig, c.LocalMaxRadius)
	}
	if c.MinCounts <= 0 {
		return fmt.Errorf("%w: min counts %d must be > 0", ErrInvalidConfig, c.MinCounts)
	}
	if c.MinDistanceFromOrigin < 0 {
		return fmt.Errorf("%w: min distance from origin %d must be >= 0", ErrInvalidConfig, c.MinDistanceFromOrigin)
	}
	if c.EdgeThreshold < 0 {
		return fmt.Errorf("%w: edge threshold %v must be >= 0", ErrInvalidConfig, c.EdgeThreshold)
	}
	if c.MaxLines <= 0 {
		return fmt.Errorf("%w: max lines %d must be > 0", ErrInvalidConfig, c.MaxLines)
	}
	return nil
}

// Detector runs the full line-detection chain over gradient pairs.
//
// Not reentrant: a Detector reuses its scratch buffers across calls.
type Detector struct {
	// MergeAngle is the angular tolerance in radians for collapsing
	// near-duplicate lines. Tunable between calls.
	MergeAngle float64

	// MergeDistance is the positional tolerance in pixels for
	// collapsing near-duplicate lines. Tunable between calls.
	MergeDistance float64

	cfg       Config
	intensity *raster.FieldF32
	binary    *raster.Mask
	transform *hough.FootTransform
	post      hough.PruneMerge

	foundLines       []hough.Line
	foundIntensities []float32
}

// New constructs a Detector, validating the configuration up front.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extractor, err := nonmax.NewExtractor(nonmax.Config{
		Radius:     cfg.LocalMaxRadius,
		Threshold:  float32(cfg.MinCounts),
		Concurrent: cfg.Concurrent,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	transform, err := hough.NewFootTransform(extractor, cfg.MinDistanceFromOrigin, cfg.Concurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Detector{
		MergeAngle:    math.Pi * 0.05,
		MergeDistance: 10,
		cfg:           cfg,
		intensity:     raster.NewFieldF32(1, 1),
		binary:        raster.NewMask(1, 1),
		transform:     transform,
	}, nil
}

// Config returns the immutable construction parameters.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect runs the pipeline over an image derivative pair.
//
// The two fields must have identical dimensions; a mismatch fails with
// ErrShapeMismatch before any buffer is touched and leaves results from
// a prior successful call intact. Zero detected lines is a valid,
// non-error outcome.
func (d *Detector) Detect(derivX, derivY *raster.FieldF32) error {
	if !derivX.SameShape(derivY) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch,
			derivX.Width, derivX.Height, derivY.Width, derivY.Height)
	}

	width, height := derivX.Width, derivX.Height

	if err := imaging.EdgeIntensityAbs(derivX, derivY, d.intensity); err != nil {
		return err
	}
	imaging.Threshold(d.intensity, d.binary, d.cfg.EdgeThreshold)

	if err := d.transform.Transform(derivX, derivY, d.binary); err != nil {
		return err
	}
	lines, intensities := d.transform.ExtractLines()

	d.post.Reset()
	for i := range lines {
		d.post.Add(lines[i], intensities[i])
	}
	d.post.PruneSimilar(d.MergeAngle, d.MergeDistance, width, height)
	d.post.PruneNBest(d.cfg.MaxLines)

	d.foundLines = d.post.Lines()
	d.foundIntensities = d.post.Intensities()
	return nil
}

// Lines returns the detected lines from the most recent successful
// Detect call, ordered by descending vote intensity. Never nil after a
// successful call.
func (d *Detector) Lines() []hough.Line {
	return d.foundLines
}

// Intensities returns the per-line vote counts parallel to Lines,
// usable for custom ranking.
func (d *Detector) Intensities() []float32 {
	return d.foundIntensities
}

// EdgeIntensity exposes the edge-strength field computed by the most
// recent Detect call. Read-only to callers.
func (d *Detector) EdgeIntensity() *raster.FieldF32 {
	return d.intensity
}

// Binary exposes the thresholded edge mask from the most recent Detect
// call. Read-only to callers.
func (d *Detector) Binary() *raster.Mask {
	return d.binary
}
