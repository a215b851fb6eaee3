package volume

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// sphereField samples a signed-distance sphere of the given radius into
// an array-backed field over [-1.1, 1.1]^3 with 0.1 voxels. Values are
// negative inside, so the surface is the 0 crossing.
func sphereField(t *testing.T, radius float64) *ScalarField {
	t.Helper()
	shape, err := sdf.Sphere3D(radius)
	if err != nil {
		t.Fatal(err)
	}

	lower := r3.Vec{X: -1.1, Y: -1.1, Z: -1.1}
	upper := r3.Vec{X: 1.1, Y: 1.1, Z: 1.1}
	f := NewScalarFieldArray(lower, upper, 0.1, 1)
	for i := 0; i < f.SizeX(); i++ {
		for j := 0; j < f.SizeY(); j++ {
			for k := 0; k < f.SizeZ(); k++ {
				p := f.Grid2Geo(Pos{i, j, k})
				f.Set(i, j, k, shape.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}))
			}
		}
	}
	return f
}

func triangleArea(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}

func TestIsosurfaceSphere(t *testing.T) {
	const radius = 0.9
	f := sphereField(t, radius)

	algorithms := []struct {
		name string
		alg  IsosurfaceAlgorithm
	}{
		{"cubes", MarchingCubes},
		{"tetrahedrons", MarchingTetrahedrons},
	}
	for _, tc := range algorithms {
		t.Run(tc.name, func(t *testing.T) {
			mesh := f.IsosurfaceMesh(0, ToMin, tc.alg)
			if len(mesh.Vertices) == 0 || len(mesh.Faces) == 0 {
				t.Fatal("empty mesh")
			}

			// Every vertex lies close to the sphere.
			for _, v := range mesh.Vertices {
				if r := r3.Norm(v); math.Abs(r-radius) > 0.05 {
					t.Fatalf("vertex %v at radius %g, sphere radius %g", v, r, radius)
				}
			}

			// Watertight: every undirected edge is shared by exactly two
			// faces.
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

			// Total area close to the analytic sphere area.
			var area float64
			for _, face := range mesh.Faces {
				area += triangleArea(
					mesh.Vertices[face[0]],
					mesh.Vertices[face[1]],
					mesh.Vertices[face[2]])
			}
			want := 4 * math.Pi * radius * radius
			if rel := math.Abs(area-want) / want; rel > 0.05 {
				t.Errorf("surface area %g, want %g within 5%% (off by %.1f%%)", area, want, rel*100)
			}
		})
	}
}

func TestIsosurfaceEmptyField(t *testing.T) {
	f := NewScalarFieldArray(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 0.1, 1)
	if tris := f.IsosurfaceCubes(0, ToMin); len(tris) != 0 {
		t.Errorf("uniform field produced %d isosurface points", len(tris))
	}
	if tris := f.IsosurfaceTetrahedrons(0, ToMin); len(tris) != 0 {
		t.Errorf("uniform field produced %d isosurface points", len(tris))
	}
}

func TestIsosurfaceTriangleStream(t *testing.T) {
	f := sphereField(t, 0.5)
	tris := f.IsosurfaceCubes(0, ToMin)
	if len(tris)%3 != 0 {
		t.Fatalf("triangle stream length %d not a multiple of 3", len(tris))
	}
	if len(tris) == 0 {
		t.Fatal("no triangles")
	}
}

func TestInterpolateSymmetric(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 2, Z: 3}
	p := interpolate(a, -0.7, b, 0.3, 0)
	q := interpolate(b, 0.3, a, -0.7, 0)
	if p != q {
		t.Errorf("interpolate depends on argument order: %v vs %v", p, q)
	}
	if math.Abs(p.X-0.7) > 1e-12 {
		t.Errorf("crossing at x=%g. want 0.7", p.X)
	}
}
