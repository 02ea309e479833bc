package nonmax

import "github.com/ironsheep/line-tools-mcp/internal/raster"

// Search decides whether a candidate cell dominates its neighborhood.
//
// Implementations receive the field, the candidate coordinate, and the
// clipped inclusive window [x0,x1]x[y0,y1] to examine. The candidate cell
// itself is always inside the window and never compared against itself.
type Search interface {
	// IsMaximum reports whether (cx, cy) wins the window as a maximum.
	IsMaximum(f *raster.FieldF32, cx, cy, x0, y0, x1, y1 int) bool

	// IsMinimum reports whether (cx, cy) wins the window as a minimum.
	IsMinimum(f *raster.FieldF32, cx, cy, x0, y0, x1, y1 int) bool
}

// relaxedSearch accepts a cell when no neighbor holds a more extreme value.
// Ties survive, so every cell of a plateau can be reported.
type relaxedSearch struct{}

func (relaxedSearch) IsMaximum(f *raster.FieldF32, cx, cy, x0, y0, x1, y1 int) bool {
	v := f.Get(cx, cy)
	for y := y0; y <= y1; y++ {
		row := y * f.Width
		for x := x0; x <= x1; x++ {
			if x == cx && y == cy {
				continue
			}
			if f.Data[row+x] > v {
				return false
			}
		}
	}
	return true
}

func (relaxedSearch) IsMinimum(f *raster.FieldF32, cx, cy, x0, y0, x1, y1 int) bool {
	v := f.Get(cx, cy)
	for y := y0; y <= y1; y++ {
		row := y * f.Width
		for x := x0; x <= x1; x++ {
			if x == cx && y == cy {
				continue
			}
			if f.Data[row+x] < v {
				return false
			}
		}
	}
	return true
}

// strictSearch requires the candidate to beat every neighbor outright.
// Plateaus report nothing.
type strictSearch struct{}

func (strictSearch) IsMaximum(f *raster.FieldF32, cx, cy, x0, y0, x1, y1 int) bool {
	v := f.Get(cx, cy)
	for y := y0; y <= y1; y++ {
		row := y * f.Width
		for x := x0; x <= x1; x++ {
			if x == cx && y == cy {
				continue
			}
			if f.Data[row+x] >= v {
				return false
			}
		}
	}
	return true
}

func (strictSearch) IsMinimum(f *raster.FieldF32, cx, cy, x0, y0, x1, y1 int) bool {
	v := f.Get(cx, cy)
	for y := y0; y <= y1; y++ {
		row := y * f.Width
		for x := x0; x <= x1; x++ {
			if x == cx && y == cy {
				continue
			}
			if f.Data[row+x] <= v {
				return false
			}
		}
	}
	return true
}
