package hough

import "math"

// Line is a parametric 2D line in image-pixel coordinates: a point on the
// line plus a direction vector. Lines produced by the transform use the
// foot-of-normal point as (X, Y), with the slope perpendicular to the
// origin-to-foot vector.
type Line struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	SlopeX float32 `json:"slope_x"`
	SlopeY float32 `json:"slope_y"`
}

// Angle returns the line's orientation folded into the half circle
// (-pi/2, pi/2]. Opposite directions describe the same line, so a half
// circle is all that distinguishes two orientations.
func (l Line) Angle() float64 {
	if l.SlopeX == 0 {
		return math.Pi / 2
	}
	return math.Atan(float64(l.SlopeY) / float64(l.SlopeX))
}

// Segment is a finite line segment with endpoints A and B.
type Segment struct {
	AX, AY float32
	BX, BY float32
}

// Clip intersects the infinite line with the rectangle
// [0, width-1] x [0, height-1] and returns the contained segment.
// ok is false when the line misses the rectangle entirely.
func (l Line) Clip(width, height int) (seg Segment, ok bool) {
	// Slab clipping of p + t*slope against each axis
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	maxX := float32(width - 1)
	maxY := float32(height - 1)

	if l.SlopeX != 0 {
		t0 := (0 - l.X) / l.SlopeX
		t1 := (maxX - l.X) / l.SlopeX
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
	} else if l.X < 0 || l.X > maxX {
		return Segment{}, false
	}

	if l.SlopeY != 0 {
		t0 := (0 - l.Y) / l.SlopeY
		t1 := (maxY - l.Y) / l.SlopeY
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
	} else if l.Y < 0 || l.Y > maxY {
		return Segment{}, false
	}

	if l.SlopeX == 0 && l.SlopeY == 0 {
		return Segment{}, false
	}
	if tMin > tMax {
		return Segment{}, false
	}

	return Segment{
		AX: l.X + tMin*l.SlopeX,
		AY: l.Y + tMin*l.SlopeY,
		BX: l.X + tMax*l.SlopeX,
		BY: l.Y + tMax*l.SlopeY,
	}, true
}

// Intersects reports whether segments s and o cross.
func (s Segment) Intersects(o Segment) bool {
	d1x, d1y := s.BX-s.AX, s.BY-s.AY
	d2x, d2y := o.BX-o.AX, o.BY-o.AY

	denom := d1x*d2y - d1y*d2x
	if denom == 0 {
		return false // parallel or degenerate
	}

	ex, ey := o.AX-s.AX, o.AY-s.AY
	t := (ex*d2y - ey*d2x) / denom
	u := (ex*d1y - ey*d1x) / denom

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// DistanceToPoint returns the Euclidean distance from (px, py) to the
// nearest point of the segment.
func (s Segment) DistanceToPoint(px, py float32) float64 {
	dx, dy := s.BX-s.AX, s.BY-s.AY
	lengthSq := dx*dx + dy*dy

	var t float32
	if lengthSq > 0 {
		t = ((px-s.AX)*dx + (py-s.AY)*dy) / lengthSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	cx := s.AX + t*dx - px
	cy := s.AY + t*dy - py
	return math.Sqrt(float64(cx*cx + cy*cy))
}

// angleDistHalf returns the distance between two half-circle angles,
// accounting for the wrap at +-pi/2.
func angleDistHalf(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}
