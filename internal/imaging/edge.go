package imaging

import (
	"fmt"

	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

// EdgeIntensityAbs combines an image derivative pair into a non-negative
// edge-strength field: out[i] = |dx[i]| + |dy[i]|.
//
// The absolute-value sum is fixed rather than the Euclidean norm because
// downstream thresholding is calibrated against it; changing the
// combination changes what a given edge threshold means.
//
// The output buffer is reshaped to match the inputs when its dimensions
// differ. A shape mismatch between dx and dy fails before any pixel of
// out is touched.
func EdgeIntensityAbs(dx, dy, out *raster.FieldF32) error {
	if err := raster.CheckSameShape(dx, dy); err != nil {
		return fmt.Errorf("edge intensity: %w", err)
	}

	out.Reshape(dx.Width, dx.Height)
	for i, vx := range dx.Data {
		vy := dy.Data[i]
		if vx < 0 {
			vx = -vx
		}
		if vy < 0 {
			vy = -vy
		}
		out.Data[i] = vx + vy
	}
	return nil
}

// Threshold binarizes an intensity field: mask cells become true exactly
// where the intensity is strictly above threshold.
//
// The comparison is exclusive at the boundary: a cell equal to the
// threshold is background. The mask's storage is reused, reshaping only
// when the intensity dimensions changed.
func Threshold(intensity *raster.FieldF32, mask *raster.Mask, threshold float32) {
	mask.Reshape(intensity.Width, intensity.Height)
	for i, v := range intensity.Data {
		mask.Data[i] = v > threshold
	}
}
