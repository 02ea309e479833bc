package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

// GrayField converts an image to a float32 luminance field with values in
// [0, 255].
//
// Conversion goes through bild's grayscale filter (ITU-R BT.601 weights),
// so the field matches what the rest of the bild-based pipeline sees.
func GrayField(img image.Image) *raster.FieldF32 {
	gray := effect.Grayscale(img)
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	field := raster.NewFieldF32(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Grayscale output has r == g == b
			i := gray.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			field.Data[y*width+x] = float32(gray.Pix[i])
		}
	}
	return field
}

// Smooth applies a Gaussian blur before gradient computation. Blurring
// the image prior to processing usually improves line detection on noisy
// input; a radius around 1.5 is a reasonable default.
func Smooth(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Gaussian(img, radius)
}

// SobelGradients computes the horizontal and vertical image derivatives
// of a luminance field using the 3x3 Sobel kernels:
//
//	dx: -1 0 1    dy: -1 -2 -1
//	    -2 0 2         0  0  0
//	    -1 0 1         1  2  1
//
// Border pixels use clamped (replicated) neighbor values. The signed
// derivative pair is what the foot-of-normal transform needs; magnitude-
// only edge filters lose the gradient direction.
func SobelGradients(gray *raster.FieldF32) (dx, dy *raster.FieldF32) {
	width, height := gray.Width, gray.Height
	dx = raster.NewFieldF32(width, height)
	dy = raster.NewFieldF32(width, height)

	for y := 0; y < height; y++ {
		ym := clamp(y-1, 0, height-1) * width
		yc := y * width
		yp := clamp(y+1, 0, height-1) * width

		for x := 0; x < width; x++ {
			xm := clamp(x-1, 0, width-1)
			xp := clamp(x+1, 0, width-1)

			tl := gray.Data[ym+xm]
			tc := gray.Data[ym+x]
			tr := gray.Data[ym+xp]
			cl := gray.Data[yc+xm]
			cr := gray.Data[yc+xp]
			bl := gray.Data[yp+xm]
			bc := gray.Data[yp+x]
			br := gray.Data[yp+xp]

			dx.Data[yc+x] = (tr + 2*cr + br) - (tl + 2*cl + bl)
			dy.Data[yc+x] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return dx, dy
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
