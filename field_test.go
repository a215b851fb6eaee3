package volume

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDownscaleSizeLaw(t *testing.T) {
	cases := []struct {
		size   [3]int
		factor int
	}{
		{[3]int{10, 7, 5}, 2},
		{[3]int{9, 9, 9}, 3},
		{[3]int{4, 4, 4}, 1},
	}
	for _, tc := range cases {
		const voxelSize = 0.1
		upper := r3.Vec{
			X: voxelSize * float64(tc.size[0]),
			Y: voxelSize * float64(tc.size[1]),
			Z: voxelSize * float64(tc.size[2]),
		}
		f := NewScalarFieldArray(r3.Vec{}, upper, voxelSize, 0)
		f.Downscale(tc.factor)

		want := [3]int{
			(tc.size[0] + tc.factor - 1) / tc.factor,
			(tc.size[1] + tc.factor - 1) / tc.factor,
			(tc.size[2] + tc.factor - 1) / tc.factor,
		}
		if got := [3]int{f.SizeX(), f.SizeY(), f.SizeZ()}; got != want {
			t.Errorf("size %v factor %d: got %v. want %v", tc.size, tc.factor, got, want)
		}
		if got, wantVS := f.VoxelSize(), voxelSize*float64(tc.factor); math.Abs(got-wantVS) > 1e-12 {
			t.Errorf("voxel size: got %g. want %g", got, wantVS)
		}
	}
}

func TestDownscaleConstantField(t *testing.T) {
	const value = 3.25
	f := NewScalarFieldArray(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 0.1, value)
	f.Downscale(2)
	for i := 0; i < f.SizeX(); i++ {
		for j := 0; j < f.SizeY(); j++ {
			for k := 0; k < f.SizeZ(); k++ {
				if got := f.Get(i, j, k); math.Abs(got-value) > 1e-9 {
					t.Fatalf("constant not preserved at (%d,%d,%d): got %g. want %g", i, j, k, got, value)
				}
			}
		}
	}
}

func TestDownscaleFactorPanics(t *testing.T) {
	f := NewScalarFieldArray(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 0.1, 0)
	defer func() {
		if recover() == nil {
			t.Error("factor 0 did not panic")
		}
	}()
	f.Downscale(0)
}

func TestFilterDCPreservation(t *testing.T) {
	const value = -1.5
	g := NewArray(12, 5, 5, value)
	filterInplace(newCatmullRomFilter(4), Delta{1, 0, 0}, g)
	for i := 0; i < 12; i++ {
		if got := g.Get(i, 2, 2); math.Abs(got-value) > 1e-12 {
			t.Fatalf("constant line changed at %d: got %g. want %g", i, got, value)
		}
	}
}

func TestFilterSmoothsImpulse(t *testing.T) {
	g := NewArray(11, 1, 1, 0.0)
	g.Set(5, 0, 0, 1)
	filterInplace(newCatmullRomFilter(3), Delta{1, 0, 0}, g)

	center := g.Get(5, 0, 0)
	if center <= 0 || center >= 1 {
		t.Errorf("impulse center after filtering: got %g. want in (0,1)", center)
	}
	if side := g.Get(4, 0, 0); side <= 0 {
		t.Errorf("impulse did not spread: neighbor %g", side)
	}
	if g.Get(4, 0, 0) != g.Get(6, 0, 0) {
		t.Error("filter response is not symmetric")
	}
}

func TestDownscaleOctreeBackend(t *testing.T) {
	// Tree-backed fields use the serial path but must obey the same
	// size law.
	f := NewScalarField(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 0.1, 2)
	f.Downscale(2)
	if got := [3]int{f.SizeX(), f.SizeY(), f.SizeZ()}; got != [3]int{5, 5, 5} {
		t.Errorf("got %v. want {5 5 5}", got)
	}
	if got := f.Get(2, 2, 2); math.Abs(got-2) > 1e-9 {
		t.Errorf("constant not preserved: got %g. want 2", got)
	}
}
