package raster

import "fmt"

// Point is a discrete 2D coordinate in field space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// FieldF32 is a dense scalar field stored in row-major order.
//
// The backing slice is retained across Reshape calls so a field owned by
// a long-lived detector can be resized without reallocating on every
// frame. Data[y*Width+x] is the value at (x, y).
type FieldF32 struct {
	Width  int
	Height int
	Data   []float32
}

// NewFieldF32 creates a zero-filled field of the given dimensions.
func NewFieldF32(width, height int) *FieldF32 {
	f := &FieldF32{}
	f.Reshape(width, height)
	return f
}

// Reshape resizes the field to width x height.
//
// Existing capacity is reused when possible; cell contents after a
// reshape are undefined until written (use Fill to clear).
func (f *FieldF32) Reshape(width, height int) {
	n := width * height
	if cap(f.Data) < n {
		f.Data = make([]float32, n)
	}
	f.Data = f.Data[:n]
	f.Width = width
	f.Height = height
}

// Fill sets every cell to v.
func (f *FieldF32) Fill(v float32) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

// Get returns the value at (x, y). No bounds checking beyond the slice's own.
func (f *FieldF32) Get(x, y int) float32 {
	return f.Data[y*f.Width+x]
}

// Set writes the value at (x, y).
func (f *FieldF32) Set(x, y int, v float32) {
	f.Data[y*f.Width+x] = v
}

// Index returns the flat index of (x, y).
func (f *FieldF32) Index(x, y int) int {
	return y*f.Width + x
}

// InBounds reports whether (x, y) lies inside the field.
func (f *FieldF32) InBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// SameShape reports whether f and o have identical dimensions.
func (f *FieldF32) SameShape(o *FieldF32) bool {
	return f.Width == o.Width && f.Height == o.Height
}

// CheckSameShape returns a descriptive error when a and b differ in shape.
func CheckSameShape(a, b *FieldF32) error {
	if !a.SameShape(b) {
		return fmt.Errorf("shape mismatch: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}

// Mask is a dense binary field stored in row-major order.
//
// Like FieldF32 it reuses backing storage across Reshape calls.
type Mask struct {
	Width  int
	Height int
	Data   []bool
}

// NewMask creates a cleared mask of the given dimensions.
func NewMask(width, height int) *Mask {
	m := &Mask{}
	m.Reshape(width, height)
	return m
}

// Reshape resizes the mask, reusing capacity when possible.
// Cell contents after a reshape are undefined until written.
func (m *Mask) Reshape(width, height int) {
	n := width * height
	if cap(m.Data) < n {
		m.Data = make([]bool, n)
	}
	m.Data = m.Data[:n]
	m.Width = width
	m.Height = height
}

// Get returns the bit at (x, y).
func (m *Mask) Get(x, y int) bool {
	return m.Data[y*m.Width+x]
}

// Set writes the bit at (x, y).
func (m *Mask) Set(x, y int, v bool) {
	m.Data[y*m.Width+x] = v
}
