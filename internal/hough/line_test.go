package hough

import (
	"math"
	"testing"
)

func TestLine_Angle(t *testing.T) {
	cases := []struct {
		name string
		line Line
		want float64
	}{
		{"horizontal", Line{X: 0, Y: 10, SlopeX: 5, SlopeY: 0}, 0},
		{"horizontal negative slope", Line{X: 0, Y: 10, SlopeX: -5, SlopeY: 0}, 0},
		{"vertical", Line{X: 10, Y: 0, SlopeX: 0, SlopeY: 3}, math.Pi / 2},
		{"diagonal", Line{X: 0, Y: 0, SlopeX: 1, SlopeY: 1}, math.Pi / 4},
		{"anti-diagonal", Line{X: 0, Y: 0, SlopeX: 1, SlopeY: -1}, -math.Pi / 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.line.Angle(); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("Angle() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestLine_Clip(t *testing.T) {
	// Horizontal line through y=30 of a 41x41 image
	l := Line{X: 20, Y: 30, SlopeX: -10, SlopeY: 0}
	seg, ok := l.Clip(41, 41)
	if !ok {
		t.Fatal("Expected line to intersect the image")
	}

	// Endpoints at the left and right image edges, either order
	lo, hi := seg.AX, seg.BX
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo != 0 || hi != 40 {
		t.Errorf("Expected x endpoints 0 and 40, got %v and %v", seg.AX, seg.BX)
	}
	if seg.AY != 30 || seg.BY != 30 {
		t.Errorf("Expected y=30 at both endpoints, got %v and %v", seg.AY, seg.BY)
	}
}

func TestLine_ClipOutside(t *testing.T) {
	// Horizontal line below the image
	l := Line{X: 5, Y: 100, SlopeX: 1, SlopeY: 0}
	if _, ok := l.Clip(50, 50); ok {
		t.Error("Expected no segment for a line outside the image")
	}

	// Degenerate direction
	d := Line{X: 5, Y: 5, SlopeX: 0, SlopeY: 0}
	if _, ok := d.Clip(50, 50); ok {
		t.Error("Expected no segment for a zero-slope line")
	}
}

func TestSegment_Intersects(t *testing.T) {
	a := Segment{AX: 0, AY: 0, BX: 10, BY: 10}
	b := Segment{AX: 0, AY: 10, BX: 10, BY: 0}
	if !a.Intersects(b) {
		t.Error("Crossing segments should intersect")
	}

	c := Segment{AX: 0, AY: 20, BX: 10, BY: 20}
	if a.Intersects(c) {
		t.Error("Disjoint segments should not intersect")
	}

	// Parallel segments never intersect
	d := Segment{AX: 0, AY: 1, BX: 10, BY: 11}
	if a.Intersects(d) {
		t.Error("Parallel segments should not intersect")
	}
}

func TestSegment_DistanceToPoint(t *testing.T) {
	s := Segment{AX: 0, AY: 0, BX: 10, BY: 0}

	cases := []struct {
		px, py float32
		want   float64
	}{
		{5, 3, 3},   // perpendicular drop inside the segment
		{-4, 0, 4},  // beyond endpoint A
		{13, 4, 5},  // beyond endpoint B, 3-4-5 triangle
		{7, 0, 0},   // on the segment
	}
	for _, c := range cases {
		if got := s.DistanceToPoint(c.px, c.py); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("DistanceToPoint(%v,%v) = %v, want %v", c.px, c.py, got, c.want)
		}
	}
}

func TestAngleDistHalf(t *testing.T) {
	if d := angleDistHalf(0.1, -0.1); math.Abs(d-0.2) > 1e-9 {
		t.Errorf("Expected 0.2, got %v", d)
	}
	// Near-vertical lines on either side of the wrap are close
	if d := angleDistHalf(math.Pi/2-0.05, -math.Pi/2+0.05); math.Abs(d-0.1) > 1e-9 {
		t.Errorf("Expected 0.1 across the wrap, got %v", d)
	}
}
