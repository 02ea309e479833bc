package hough

import "sort"

// PruneMerge post-processes detected lines: it collapses near-duplicate
// detections down to their strongest representative and truncates the
// survivors to a caller-chosen budget.
//
// The zero value is ready to use. Typical sequence per detection pass:
// Reset, Add for every line, PruneSimilar, PruneNBest, Lines.
type PruneMerge struct {
	items []scoredLine
}

type scoredLine struct {
	line      Line
	intensity float32
}

// Reset clears the working set.
func (p *PruneMerge) Reset() {
	p.items = p.items[:0]
}

// Add appends a line and its vote intensity to the working set.
func (p *PruneMerge) Add(l Line, intensity float32) {
	p.items = append(p.items, scoredLine{line: l, intensity: intensity})
}

// Size returns the number of lines currently held.
func (p *PruneMerge) Size() int {
	return len(p.items)
}

// PruneSimilar merges near-duplicate lines, keeping the highest-intensity
// member of every cluster.
//
// Two lines belong to the same cluster when their half-circle angular
// difference is within angleTol (radians) and they pass close to each
// other inside the width x height image: either their image-clipped
// segments cross, or an endpoint of the weaker segment lies within
// distTol pixels of the stronger one.
//
// The working set is first stably sorted by descending intensity, so
// exact intensity ties resolve in favor of the first-added line. Running
// PruneSimilar twice with the same tolerances is a no-op the second time.
func (p *PruneMerge) PruneSimilar(angleTol, distTol float64, width, height int) {
	p.sortByIntensity()

	n := len(p.items)
	angles := make([]float64, n)
	segments := make([]Segment, n)
	alive := make([]bool, n)

	for i, it := range p.items {
		angles[i] = it.line.Angle()
		seg, ok := it.line.Clip(width, height)
		segments[i] = seg
		alive[i] = ok
	}

	for i := 0; i < n; i++ {
		if !alive[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !alive[j] {
				continue
			}
			if angleDistHalf(angles[i], angles[j]) > angleTol {
				continue
			}

			if segments[i].Intersects(segments[j]) {
				alive[j] = false
				continue
			}
			distA := segments[i].DistanceToPoint(segments[j].AX, segments[j].AY)
			distB := segments[i].DistanceToPoint(segments[j].BX, segments[j].BY)
			if distA <= distTol || distB <= distTol {
				alive[j] = false
			}
		}
	}

	kept := p.items[:0]
	for i, it := range p.items {
		if alive[i] {
			kept = append(kept, it)
		}
	}
	p.items = kept
}

// PruneNBest truncates the working set to the maxLines strongest lines.
// A working set already at or under the budget is left intact apart from
// being re-sorted by descending intensity.
func (p *PruneMerge) PruneNBest(maxLines int) {
	p.sortByIntensity()
	if len(p.items) > maxLines {
		p.items = p.items[:maxLines]
	}
}

// Lines materializes the current working set in its internal order
// (descending intensity after a prune). The result is never nil.
func (p *PruneMerge) Lines() []Line {
	out := make([]Line, len(p.items))
	for i, it := range p.items {
		out[i] = it.line
	}
	return out
}

// Intensities returns the vote intensities parallel to Lines.
func (p *PruneMerge) Intensities() []float32 {
	out := make([]float32, len(p.items))
	for i, it := range p.items {
		out[i] = it.intensity
	}
	return out
}

// sortByIntensity orders strongest-first. The stable sort preserves
// insertion order among equal intensities.
func (p *PruneMerge) sortByIntensity() {
	sort.SliceStable(p.items, func(i, j int) bool {
		return p.items[i].intensity > p.items[j].intensity
	})
}
