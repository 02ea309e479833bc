package detection

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createRuledImage returns a white image with a single black horizontal
// stroke on the given row.
func createRuledImage(width, height, row int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < width-10; x++ {
		img.Set(x, row, color.Black)
	}
	return img
}

func TestDetectImage(t *testing.T) {
	d, err := New(Config{
		LocalMaxRadius:        5,
		MinCounts:             10,
		MinDistanceFromOrigin: 5,
		EdgeThreshold:         100,
		MaxLines:              5,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img := createRuledImage(100, 100, 70)
	result, err := DetectImage(d, img, 0)
	if err != nil {
		t.Fatalf("DetectImage failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.Count != 1 {
		t.Fatalf("Expected the stroke's two edge responses to merge into 1 line, got %d", result.Count)
	}

	line := result.Lines[0]
	if math.Abs(line.AngleDegrees) > 2 {
		t.Errorf("Expected a horizontal line, angle %v degrees", line.AngleDegrees)
	}
	if line.Start.Y < 68 || line.Start.Y > 72 {
		t.Errorf("Expected line near row 70, start %+v", line.Start)
	}
	if line.Start.X >= line.End.X {
		t.Errorf("Clipped segment endpoints out of order: %+v -> %+v", line.Start, line.End)
	}
	if line.Votes <= 0 {
		t.Errorf("Expected positive vote count, got %v", line.Votes)
	}
	if len(line.Color) != 7 || line.Color[0] != '#' {
		t.Errorf("Expected hex color like #RRGGBB, got %q", line.Color)
	}
}

// The clip returns endpoints in line-parameter order, which reverses
// when the stroke sits on the other side of the accumulator origin.
// Reported segments must be normalized regardless.
func TestDetectImage_EndpointOrder(t *testing.T) {
	cfg := Config{
		LocalMaxRadius:        5,
		MinCounts:             10,
		MinDistanceFromOrigin: 5,
		EdgeThreshold:         100,
		MaxLines:              5,
	}

	for _, row := range []int{30, 70} {
		d, err := New(cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		result, err := DetectImage(d, createRuledImage(100, 100, row), 0)
		if err != nil {
			t.Fatalf("DetectImage failed for row %d: %v", row, err)
		}
		if result.Count != 1 {
			t.Fatalf("row %d: expected 1 line, got %d", row, result.Count)
		}

		line := result.Lines[0]
		if line.Start.X >= line.End.X {
			t.Errorf("row %d: endpoints out of order: %+v -> %+v", row, line.Start, line.End)
		}
	}

	// Vertical stroke left of center: endpoints tie on X, so the
	// topmost one must come first.
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 10; y < 90; y++ {
		img.Set(30, y, color.Black)
	}

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := DetectImage(d, img, 0)
	if err != nil {
		t.Fatalf("DetectImage failed for vertical stroke: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("vertical stroke: expected 1 line, got %d", result.Count)
	}
	line := result.Lines[0]
	if line.Start.X != line.End.X {
		t.Errorf("vertical stroke: expected equal X, got %+v -> %+v", line.Start, line.End)
	}
	if line.Start.Y >= line.End.Y {
		t.Errorf("vertical stroke: endpoints out of order: %+v -> %+v", line.Start, line.End)
	}
}

func TestDetectImage_Blank(t *testing.T) {
	d, err := New(Config{
		LocalMaxRadius:        5,
		MinCounts:             10,
		MinDistanceFromOrigin: 5,
		EdgeThreshold:         100,
		MaxLines:              5,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.White)
		}
	}

	result, err := DetectImage(d, img, 0)
	if err != nil {
		t.Fatalf("DetectImage failed: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("Expected no lines on a blank image, got %d", result.Count)
	}
	if result.Lines == nil {
		t.Error("Lines must be an empty slice, not nil")
	}
}

func TestSampleColorHex(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	img.Set(2, 2, color.RGBA{0, 0, 0, 255})

	if got := sampleColorHex(img, 1, 1); got != "#FF0000" {
		t.Errorf("Expected #FF0000, got %s", got)
	}
	if got := sampleColorHex(img, 2, 2); got != "#000000" {
		t.Errorf("Expected #000000, got %s", got)
	}
}
