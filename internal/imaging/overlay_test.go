package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ironsheep/line-tools-mcp/internal/hough"
	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

func createWhiteImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func decodeBase64PNG(t *testing.T, data string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestRenderLineOverlay(t *testing.T) {
	img := createWhiteImage(60, 40)
	lines := []hough.Line{
		{X: 30, Y: 20, SlopeX: -10, SlopeY: 0}, // horizontal
		{X: 15, Y: 20, SlopeX: 0, SlopeY: 5},   // vertical
	}

	result, err := RenderLineOverlay(img, lines, 2)
	if err != nil {
		t.Fatalf("RenderLineOverlay failed: %v", err)
	}

	if result.Width != 60 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 60x40", result.Width, result.Height)
	}
	if result.LineCount != 2 {
		t.Errorf("LineCount: got %d, want 2", result.LineCount)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded := decodeBase64PNG(t, result.ImageBase64)

	// The horizontal line must have recolored row 20
	r, g, b, _ := decoded.At(30, 20).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("Expected a stroked pixel at (30,20), found untouched white")
	}
}

func TestRenderLineOverlay_NoLines(t *testing.T) {
	img := createWhiteImage(20, 20)

	result, err := RenderLineOverlay(img, nil, 2)
	if err != nil {
		t.Fatalf("RenderLineOverlay failed: %v", err)
	}
	if result.LineCount != 0 {
		t.Errorf("Expected 0 drawn lines, got %d", result.LineCount)
	}
	if result.ImageBase64 == "" {
		t.Error("Expected the untouched image to still be encoded")
	}
}

func TestRenderLineOverlay_LineOutsideImage(t *testing.T) {
	img := createWhiteImage(20, 20)
	lines := []hough.Line{{X: 10, Y: 500, SlopeX: 1, SlopeY: 0}}

	result, err := RenderLineOverlay(img, lines, 2)
	if err != nil {
		t.Fatalf("RenderLineOverlay failed: %v", err)
	}
	if result.LineCount != 0 {
		t.Errorf("Line outside the image must not be drawn, got count %d", result.LineCount)
	}
}

func TestRenderEdgeMap(t *testing.T) {
	mask := raster.NewMask(30, 20)
	for i := range mask.Data {
		mask.Data[i] = false
	}
	mask.Set(5, 5, true)
	mask.Set(6, 5, true)

	result, err := RenderEdgeMap(mask)
	if err != nil {
		t.Fatalf("RenderEdgeMap failed: %v", err)
	}

	if result.EdgeCount != 2 {
		t.Errorf("EdgeCount: got %d, want 2", result.EdgeCount)
	}

	decoded := decodeBase64PNG(t, result.ImageBase64)
	if r, _, _, _ := decoded.At(5, 5).RGBA(); r != 0xffff {
		t.Error("Edge pixel should render white")
	}
	if r, _, _, _ := decoded.At(10, 10).RGBA(); r != 0 {
		t.Error("Background pixel should render black")
	}
}
