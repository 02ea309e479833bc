package detection

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/line-tools-mcp/internal/imaging"
)

// Point represents a 2D coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Line represents a detected infinite line, reported through its
// segment clipped to the image boundary
type Line struct {
	Start        Point   `json:"start"`
	End          Point   `json:"end"`
	FootX        float64 `json:"foot_x"`
	FootY        float64 `json:"foot_y"`
	AngleDegrees float64 `json:"angle_degrees"`
	Votes        float64 `json:"votes"`
	Color        string  `json:"color"`
}

// LinesResult contains detected lines
type LinesResult struct {
	Lines  []Line `json:"lines"`
	Count  int    `json:"count"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DetectImage runs the detector over an image: optional Gaussian
// smoothing, grayscale conversion, Sobel derivatives, then Detect.
//
// Lines whose clipped segment misses the image entirely are dropped
// from the result. Each reported line carries the hex color sampled at
// the midpoint of its visible segment, which helps callers tell grid
// lines from content strokes.
func DetectImage(d *Detector, img image.Image, blurRadius float64) (*LinesResult, error) {
	smoothed := imaging.Smooth(img, blurRadius)
	gray := imaging.GrayField(smoothed)
	derivX, derivY := imaging.SobelGradients(gray)

	if err := d.Detect(derivX, derivY); err != nil {
		return nil, fmt.Errorf("line detection failed: %w", err)
	}

	width, height := gray.Width, gray.Height
	bounds := img.Bounds()

	found := d.Lines()
	votes := d.Intensities()
	lines := make([]Line, 0, len(found))
	for i, l := range found {
		seg, ok := l.Clip(width, height)
		if !ok {
			continue
		}
		// The clip walks the line in parameter order, which flips with the
		// gradient's sign. Normalize so Start is always the left endpoint
		// (topmost for vertical lines).
		if seg.AX > seg.BX || (seg.AX == seg.BX && seg.AY > seg.BY) {
			seg.AX, seg.BX = seg.BX, seg.AX
			seg.AY, seg.BY = seg.BY, seg.AY
		}
		midX := int((seg.AX + seg.BX) / 2)
		midY := int((seg.AY + seg.BY) / 2)

		lines = append(lines, Line{
			Start:        Point{X: int(seg.AX), Y: int(seg.AY)},
			End:          Point{X: int(seg.BX), Y: int(seg.BY)},
			FootX:        round1(float64(l.X)),
			FootY:        round1(float64(l.Y)),
			AngleDegrees: round1(l.Angle() * 180 / math.Pi),
			Votes:        float64(votes[i]),
			Color:        sampleColorHex(img, midX+bounds.Min.X, midY+bounds.Min.Y),
		})
	}

	return &LinesResult{
		Lines:  lines,
		Count:  len(lines),
		Width:  width,
		Height: height,
	}, nil
}

// sampleColorHex returns the color at (x, y) as a hex string like "#FF0000"
func sampleColorHex(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
