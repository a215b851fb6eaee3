package volume

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// sphereShell samples points on a sphere surface on a latitude and
// longitude lattice dense enough that neighboring samples are closer
// than the reconstruction voxel size.
func sphereShell(radius float64, rings, segments int) Points {
	var pts Points
	for a := 0; a <= rings; a++ {
		theta := math.Pi * float64(a) / float64(rings)
		for b := 0; b < segments; b++ {
			phi := 2 * math.Pi * float64(b) / float64(segments)
			pts = append(pts, r3.Vec{
				X: radius * math.Sin(theta) * math.Cos(phi),
				Y: radius * math.Sin(theta) * math.Sin(phi),
				Z: radius * math.Cos(theta),
			})
		}
	}
	return pts
}

func TestReconstructSphereShell(t *testing.T) {
	const radius = 0.8
	cloud := sphereShell(radius, 60, 120)
	f := ReconstructCloud(cloud, 0.1, 0.15, 3)

	if got := f.FGet(r3.Vec{}); got <= 0 {
		t.Errorf("center membership: got %g. want > 0", got)
	}
	outside := []r3.Vec{
		{X: 0.75, Y: 0.75, Z: 0.75},
		{X: -0.75, Y: 0.75, Z: -0.75},
		{X: 0.78, Y: -0.78, Z: 0.78},
	}
	for _, p := range outside {
		if got := f.FGet(p); got >= 0 {
			t.Errorf("membership at %v: got %g. want < 0", p, got)
		}
	}
	inside := []r3.Vec{
		{X: 0.3, Y: 0, Z: 0},
		{X: 0, Y: -0.4, Z: 0.2},
	}
	for _, p := range inside {
		if got := f.FGet(p); got <= 0 {
			t.Errorf("membership at %v: got %g. want > 0", p, got)
		}
	}
}

func TestReconstructEmptyLinesVoteOutside(t *testing.T) {
	bf := NewBitfield(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 0.1)
	f := Reconstruct(bf, 0.1, 3)
	for _, p := range []Pos{{0, 0, 0}, {5, 5, 5}, {9, 9, 9}} {
		if got := f.Get(p[0], p[1], p[2]); got >= 0 {
			t.Errorf("empty bitfield membership at %v: got %g. want < 0", p, got)
		}
	}
}

func TestReconstructIsosurfaceClosed(t *testing.T) {
	const radius = 0.8
	cloud := sphereShell(radius, 60, 120)
	f := ReconstructCloud(cloud, 0.1, 0.15, 3)

	// Tetrahedrons: no ambiguous configurations, so the watertight
	// check holds for any input field.
	mesh := f.IsosurfaceMesh(0, ToMax, MarchingTetrahedrons)
	if len(mesh.Faces) == 0 {
		t.Fatal("no faces reconstructed")
	}
	edges := make(map[[2]int]int)
	for _, face := range mesh.Faces {
		for e := 0; e < 3; e++ {
			a, b := face[e], face[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[[2]int{a, b}]++
		}
	}
	for edge, n := range edges {
		if n != 2 {
			t.Fatalf("edge %v shared by %d faces. want 2", edge, n)
		}
	}
}

func TestPollResult(t *testing.T) {
	if got := pollResult(poll{positives: 3, negatives: 1}); got != 1 {
		t.Errorf("got %g. want 1", got)
	}
	if got := pollResult(poll{positives: 1, negatives: 3}); got != -1 {
		t.Errorf("got %g. want -1", got)
	}
	// Ties go outside.
	if got := pollResult(poll{positives: 2, negatives: 2}); got != -1 {
		t.Errorf("tie: got %g. want -1", got)
	}
}

func TestSatInc(t *testing.T) {
	if got := satInc(0); got != 1 {
		t.Errorf("got %d. want 1", got)
	}
	if got := satInc(math.MaxUint8); got != math.MaxUint8 {
		t.Errorf("saturation: got %d. want %d", got, math.MaxUint8)
	}
}
