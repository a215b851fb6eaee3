package volume

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDistanceMapSingleFeature(t *testing.T) {
	const voxelSize = 0.1
	const initValue = 10.0
	bf := NewBitfield(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, voxelSize)
	bf.Set(0, 0, 0, true)

	dm := DistanceMap(bf, initValue)
	samples := []Pos{
		{0, 0, 0},
		{3, 0, 0},
		{0, 4, 0},
		{0, 0, 5},
		{3, 4, 0},
		{1, 1, 1},
		{2, 3, 6},
		{9, 9, 9},
	}
	for _, p := range samples {
		want := voxelSize * math.Sqrt(float64(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]))
		if got := dm.Get(p[0], p[1], p[2]); math.Abs(got-want) > 1e-5 {
			t.Errorf("distance at %v: got %g. want %g", p, got, want)
		}
	}
}

func TestDistanceMapGeoreferencing(t *testing.T) {
	bf := NewBitfield(r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: 1, Z: 1}, 0.25)
	dm := DistanceMap(bf, 5)
	if dm.Lower() != bf.Lower() || dm.Upper() != bf.Upper() {
		t.Error("distance map does not share the bitfield's extents")
	}
	if dm.VoxelSize() != bf.VoxelSize() {
		t.Error("distance map does not share the bitfield's voxel size")
	}
	// Empty bitfield: everything stays at the infinity sentinel.
	if got := dm.Get(4, 4, 4); got != 5 {
		t.Errorf("got %g. want 5", got)
	}
}

func TestDistanceMapClamped(t *testing.T) {
	// Distances beyond initValue keep initValue.
	const voxelSize = 0.1
	const initValue = 0.25
	bf := NewBitfield(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, voxelSize)
	bf.Set(0, 0, 0, true)

	dm := DistanceMap(bf, initValue)
	if got := dm.Get(9, 9, 9); got != initValue {
		t.Errorf("far voxel: got %g. want %g", got, initValue)
	}
	if got := dm.Get(1, 0, 0); math.Abs(got-voxelSize) > 1e-6 {
		t.Errorf("near voxel: got %g. want %g", got, voxelSize)
	}
}

func TestDistanceMapFromCloud(t *testing.T) {
	const voxelSize = 0.1
	cloud := Points{
		{X: 0.05, Y: 0.05, Z: 0.05},
		{X: 0.95, Y: 0.95, Z: 0.95},
	}
	dm := DistanceMapFromCloud(cloud, voxelSize, 10)

	for _, p := range []Pos{{0, 0, 0}, {2, 0, 1}, {4, 4, 4}, {8, 8, 8}} {
		center := dm.Grid2Geo(p)
		want := math.Inf(1)
		for _, q := range cloud {
			if d := r3.Norm(r3.Sub(center, q)); d < want {
				want = d
			}
		}
		if got := dm.Get(p[0], p[1], p[2]); math.Abs(got-want) > 1e-4 {
			t.Errorf("distance at %v: got %g. want %g", p, got, want)
		}
	}
}
