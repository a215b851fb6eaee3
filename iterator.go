package volume

import "math"

// LineIter traverses a straight axis-aligned line of voxels through a
// grid. It is defined by a start position and a displacement with
// exactly one nonzero component; stepping moves along that axis. It is
// not a true iterator in the dereferencing sense: the addressed voxel is
// read and written through Value and SetValue, so the same algorithm
// runs unmodified over any Grid backend.
//
// Iterators are value types. Two iterators over the same grid with the
// same displacement compare equal when they address the same position,
// so sweeps are written as
//
//	it, end := NewLineIter(g, start, diff), NewLineIter(g, start, diff).End()
//	for it != end { ...; it = it.Step() }
type LineIter[T comparable] struct {
	grid Grid[T]
	Pos  Pos
	diff Delta
}

// NewLineIter returns an iterator at start moving by diff. Panics unless
// diff has exactly one nonzero component.
func NewLineIter[T comparable](g Grid[T], start Pos, diff Delta) LineIter[T] {
	diff.axis() // assert single-axis displacement
	return LineIter[T]{grid: g, Pos: start, diff: diff}
}

// Step returns the iterator advanced by one displacement.
func (it LineIter[T]) Step() LineIter[T] {
	it.Pos = it.Pos.Add(it.diff)
	return it
}

// StepN returns the iterator advanced by n displacements. n may be
// negative.
func (it LineIter[T]) StepN(n int) LineIter[T] {
	it.Pos = it.Pos.Add(it.diff.Scale(n))
	return it
}

// Sub returns the index distance between two iterators sharing the same
// displacement: the number of steps taking op to it. Panics when the
// displacements differ.
func (it LineIter[T]) Sub(op LineIter[T]) int {
	if it.diff != op.diff {
		panic("volume: iterator displacement mismatch")
	}
	a := it.diff.axis()
	return (it.Pos[a] - op.Pos[a]) / it.diff[a]
}

// Value reads the addressed voxel.
func (it LineIter[T]) Value() T {
	return it.grid.Get(it.Pos[0], it.Pos[1], it.Pos[2])
}

// At reads the voxel i steps away from the iterator.
func (it LineIter[T]) At(i int) T {
	return it.StepN(i).Value()
}

// SetValue writes the addressed voxel.
func (it LineIter[T]) SetValue(v T) {
	it.grid.Set(it.Pos[0], it.Pos[1], it.Pos[2], v)
}

// End returns the iterator one step past the last position inside the
// grid, found by intersecting the line with the grid's bounding faces
// extended by a half-voxel margin and keeping the closest forward hit.
// The result is a half-open bound usable in a for it != end sweep.
func (it LineIter[T]) End() LineIter[T] {
	sizeX := it.grid.SizeX()
	sizeY := it.grid.SizeY()
	sizeZ := it.grid.SizeZ()

	u := float64(maxInt(sizeX, maxInt(sizeY, sizeZ)))

	// Closest clipping plane intersection along the line.
	clip := func(diff, pos, size int) {
		var toss float64
		switch {
		case diff > 0:
			toss = (float64(size) + 0.5 - float64(pos)) / float64(diff)
		case diff < 0:
			toss = (-1.5 - float64(pos)) / float64(diff)
		default:
			return
		}
		if toss < u {
			u = toss
		}
	}
	clip(it.diff[0], it.Pos[0], sizeX)
	clip(it.diff[1], it.Pos[1], sizeY)
	clip(it.diff[2], it.Pos[2], sizeZ)

	steps := int(math.Floor(u))
	it.Pos = it.Pos.Add(it.diff.Scale(steps))
	return it
}

// LineStarts enumerates, for a single-axis displacement, one starting
// position per line orthogonal to that axis so that iterators with that
// displacement cover the whole volume with no overlaps and no gaps. For
// a positive displacement the starts lie on the low face of the grid,
// for a negative one on the high face.
func LineStarts[T comparable](g Grid[T], diff Delta) []Pos {
	var starts []Pos
	switch diff.axis() {
	case 0:
		x := 0
		if diff[0] < 0 {
			x = g.SizeX() - 1
		}
		for j := 0; j < g.SizeY(); j++ {
			for k := 0; k < g.SizeZ(); k++ {
				starts = append(starts, Pos{x, j, k})
			}
		}
	case 1:
		y := 0
		if diff[1] < 0 {
			y = g.SizeY() - 1
		}
		for i := 0; i < g.SizeX(); i++ {
			for k := 0; k < g.SizeZ(); k++ {
				starts = append(starts, Pos{i, y, k})
			}
		}
	case 2:
		z := 0
		if diff[2] < 0 {
			z = g.SizeZ() - 1
		}
		for i := 0; i < g.SizeX(); i++ {
			for j := 0; j < g.SizeY(); j++ {
				starts = append(starts, Pos{i, j, z})
			}
		}
	}
	return starts
}
