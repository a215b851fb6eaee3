/*

Package volume implements volumetric modeling on a regular 3D lattice.

A generic quantity, scalar or vector, is sampled in a voxel grid. The grid
is stored either in a size-compressing octree (Octree) whose nodes merge
and split automatically, or in a flat dense buffer (Array) for operations
that mutate voxels from multiple goroutines. A georeferencing layer
(GeoVolume) maps world coordinates to grid indices, ScalarField extracts
boundary quads and isosurfaces (marching cubes or marching tetrahedrons),
DistanceMap computes Euclidean distance transforms and Reconstruct builds
a solid membership field from boundary point samples.

*/
package volume

import "gonum.org/v1/gonum/spatial/r3"

// Pos is a voxel address on the integer lattice.
type Pos [3]int

// Delta is an integer displacement between voxel addresses.
type Delta [3]int

// Add adds a displacement to a position. Returns p + d.
func (p Pos) Add(d Delta) Pos {
	return Pos{p[0] + d[0], p[1] + d[1], p[2] + d[2]}
}

// Sub returns the displacement between two positions, p - q.
func (p Pos) Sub(q Pos) Delta {
	return Delta{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Vec converts Pos (integer) to r3.Vec (float).
func (p Pos) Vec() r3.Vec {
	return r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// Scale multiplies each component of the displacement by f.
func (d Delta) Scale(f int) Delta {
	return Delta{f * d[0], f * d[1], f * d[2]}
}

// axis returns the index of the single nonzero component of d.
// Panics if d does not have exactly one nonzero component.
func (d Delta) axis() int {
	a := -1
	for i, v := range d {
		if v == 0 {
			continue
		}
		if a >= 0 {
			panic("volume: displacement must have exactly one nonzero axis")
		}
		a = i
	}
	if a < 0 {
		panic("volume: displacement must have exactly one nonzero axis")
	}
	return a
}

// Grid is the capability interface shared by voxel storage backends.
// Out-of-range access is defined behavior: Get returns the backend's
// initial value and Set is a no-op. Callers needing strict bounds must
// pre-check.
//
// Set on an Octree is not safe for concurrent use. See Array for the
// backend supporting parallel mutation.
type Grid[T comparable] interface {
	Get(i, j, k int) T
	Set(i, j, k int, v T)
	SizeX() int
	SizeY() int
	SizeZ() int
}

func maxInt(a, b int) int {
	if a >= b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
