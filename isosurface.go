package volume

import (
	"github.com/golang/glog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/volgeo/volume/internal/conc"
	"github.com/volgeo/volume/internal/mc"
)

// interpolate finds the point on the segment p1-p2 where the linearly
// interpolated field value equals midval. The blend weights are always
// computed relative to the larger endpoint so the result is identical
// regardless of argument order.
func interpolate(p1 r3.Vec, value1 float64, p2 r3.Vec, value2 float64, midval float64) r3.Vec {
	var alpha1, alpha2 float64
	if value1 > value2 {
		alpha1 = (midval - value2) / (value1 - value2)
		alpha2 = 1 - alpha1
	} else {
		alpha2 = (midval - value1) / (value2 - value1)
		alpha1 = 1 - alpha2
	}
	return r3.Vec{
		X: p1.X*alpha1 + p2.X*alpha2,
		Y: p1.Y*alpha1 + p2.Y*alpha2,
		Z: p1.Z*alpha1 + p2.Z*alpha2,
	}
}

// isoFromCube triangulates the threshold crossing inside one cube with
// the classic marching cubes tables and appends the triangle vertices
// to buf. Corner ordering follows the table convention: corners 0-3
// wind counterclockwise around the low-Z face, 4-7 sit above them.
func isoFromCube(buf []r3.Vec, vertices *[8]r3.Vec, values *[8]float64, threshold float64, orientation SurfaceOrientation) []r3.Vec {
	idx := 0
	if orientation == ToMin {
		for c := 0; c < 8; c++ {
			if values[c] < threshold {
				idx |= 1 << c
			}
		}
	} else {
		for c := 0; c < 8; c++ {
			if values[c] > threshold {
				idx |= 1 << c
			}
		}
	}

	edges := mc.EdgeTable[idx]
	if edges == 0 {
		return buf
	}

	var onEdge [12]r3.Vec
	for e, pair := range mc.EdgePairs {
		if edges>>e&1 != 0 {
			a, b := pair[0], pair[1]
			onEdge[e] = interpolate(vertices[a], values[a], vertices[b], values[b], threshold)
		}
	}

	for _, e := range mc.TriTable[idx] {
		buf = append(buf, onEdge[e])
	}
	return buf
}

// IsosurfaceCubes extracts the isosurface at the given threshold with
// the marching cubes algorithm. The returned slice holds the vertices
// of consecutive triangles, three per triangle. Cells are marched one
// voxel beyond the grid on every side so surfaces around boundary
// features close over initValue samples.
func (f *ScalarField) IsosurfaceCubes(threshold float64, orientation SurfaceOrientation) []r3.Vec {
	glog.V(2).Infof("extracting isosurface (marching cubes), threshold %g", threshold)

	sizeX, sizeY, sizeZ := f.SizeX(), f.SizeY(), f.SizeZ()
	bufs := make([][]r3.Vec, conc.Workers)

	conc.Parallel(sizeX+1, func(worker, n int) {
		i := n - 1
		var vertices [8]r3.Vec
		var values [8]float64
		for j := -1; j < sizeY; j++ {
			for k := -1; k < sizeZ; k++ {
				vertices[0] = f.Grid2Geo(Pos{i, j, k})
				values[0] = f.Get(i, j, k)
				vertices[1] = f.Grid2Geo(Pos{i + 1, j, k})
				values[1] = f.Get(i+1, j, k)
				vertices[2] = f.Grid2Geo(Pos{i + 1, j + 1, k})
				values[2] = f.Get(i+1, j+1, k)
				vertices[3] = f.Grid2Geo(Pos{i, j + 1, k})
				values[3] = f.Get(i, j+1, k)
				vertices[4] = f.Grid2Geo(Pos{i, j, k + 1})
				values[4] = f.Get(i, j, k+1)
				vertices[5] = f.Grid2Geo(Pos{i + 1, j, k + 1})
				values[5] = f.Get(i+1, j, k+1)
				vertices[6] = f.Grid2Geo(Pos{i + 1, j + 1, k + 1})
				values[6] = f.Get(i+1, j+1, k+1)
				vertices[7] = f.Grid2Geo(Pos{i, j + 1, k + 1})
				values[7] = f.Get(i, j+1, k+1)

				bufs[worker] = isoFromCube(bufs[worker], &vertices, &values, threshold, orientation)
			}
		}
	})

	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	out := make([]r3.Vec, 0, total)
	for _, b := range bufs {
		out = append(out, b...)
	}
	glog.V(2).Infof("isosurface done, %d triangles", len(out)/3)
	return out
}

// isoFromTetrahedron triangulates the threshold crossing inside one
// tetrahedron. Sixteen sign patterns over the four corners, the mixed
// ones emit one or two triangles. With orientation ToMax the patterns
// mirror so the winding flips along with the surface normal.
func isoFromTetrahedron(buf []r3.Vec,
	vx0 r3.Vec, value0 float64,
	vx1 r3.Vec, value1 float64,
	vx2 r3.Vec, value2 float64,
	vx3 r3.Vec, value3 float64,
	threshold float64, orientation SurfaceOrientation) []r3.Vec {

	over0, over1 := value0 > threshold, value1 > threshold
	over2, over3 := value2 > threshold, value3 > threshold

	if (over0 && over1 && over2 && over3) ||
		(!over0 && !over1 && !over2 && !over3) {
		return buf
	}

	toMin := orientation == ToMin
	// pattern reports whether corner signs (b0,b1,b2,b3) select this
	// case for the current orientation.
	pattern := func(b0, b1, b2, b3 bool) bool {
		if toMin {
			return over0 == b0 && over1 == b1 && over2 == b2 && over3 == b3
		}
		return over0 != b0 && over1 != b1 && over2 != b2 && over3 != b3
	}

	switch {
	case pattern(true, false, false, false):
		buf = append(buf,
			interpolate(vx1, value1, vx0, value0, threshold),
			interpolate(vx2, value2, vx0, value0, threshold),
			interpolate(vx3, value3, vx0, value0, threshold))

	case pattern(false, true, false, false):
		buf = append(buf,
			interpolate(vx2, value2, vx1, value1, threshold),
			interpolate(vx0, value0, vx1, value1, threshold),
			interpolate(vx3, value3, vx1, value1, threshold))

	case pattern(true, true, false, false):
		buf = append(buf,
			interpolate(vx1, value1, vx2, value2, threshold),
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx0, value0, vx3, value3, threshold))

	case pattern(false, false, true, false):
		buf = append(buf,
			interpolate(vx1, value1, vx2, value2, threshold),
			interpolate(vx3, value3, vx2, value2, threshold),
			interpolate(vx0, value0, vx2, value2, threshold))

	case pattern(true, false, true, false):
		buf = append(buf,
			interpolate(vx0, value0, vx1, value1, threshold),
			interpolate(vx1, value1, vx2, value2, threshold),
			interpolate(vx2, value2, vx3, value3, threshold),
			interpolate(vx2, value2, vx3, value3, threshold),
			interpolate(vx0, value0, vx3, value3, threshold),
			interpolate(vx0, value0, vx1, value1, threshold))

	case pattern(false, true, true, false):
		buf = append(buf,
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx0, value0, vx1, value1, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx2, value2, vx3, value3, threshold))

	case pattern(true, true, true, false):
		buf = append(buf,
			interpolate(vx2, value2, vx3, value3, threshold),
			interpolate(vx0, value0, vx3, value3, threshold),
			interpolate(vx1, value1, vx3, value3, threshold))

	case pattern(false, false, false, true):
		buf = append(buf,
			interpolate(vx2, value2, vx3, value3, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx0, value0, vx3, value3, threshold))

	case pattern(true, false, false, true):
		buf = append(buf,
			interpolate(vx0, value0, vx1, value1, threshold),
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx2, value2, vx3, value3, threshold))

	case pattern(false, true, false, true):
		buf = append(buf,
			interpolate(vx1, value1, vx2, value2, threshold),
			interpolate(vx0, value0, vx1, value1, threshold),
			interpolate(vx2, value2, vx3, value3, threshold),
			interpolate(vx0, value0, vx3, value3, threshold),
			interpolate(vx2, value2, vx3, value3, threshold),
			interpolate(vx0, value0, vx1, value1, threshold))

	case pattern(true, true, false, true):
		buf = append(buf,
			interpolate(vx3, value3, vx2, value2, threshold),
			interpolate(vx1, value1, vx2, value2, threshold),
			interpolate(vx0, value0, vx2, value2, threshold))

	case pattern(false, false, true, true):
		buf = append(buf,
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx1, value1, vx2, value2, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx0, value0, vx2, value2, threshold),
			interpolate(vx1, value1, vx3, value3, threshold),
			interpolate(vx0, value0, vx3, value3, threshold))

	case pattern(true, false, true, true):
		buf = append(buf,
			interpolate(vx0, value0, vx1, value1, threshold),
			interpolate(vx2, value2, vx1, value1, threshold),
			interpolate(vx3, value3, vx1, value1, threshold))

	case pattern(false, true, true, true):
		buf = append(buf,
			interpolate(vx2, value2, vx0, value0, threshold),
			interpolate(vx1, value1, vx0, value0, threshold),
			interpolate(vx3, value3, vx0, value0, threshold))
	}
	return buf
}

// IsosurfaceTetrahedrons extracts the isosurface at the given
// threshold with the marching tetrahedrons algorithm: every cell
// decomposes into six tetrahedra sharing the cell diagonal. The
// returned slice holds the vertices of consecutive triangles. This
// never produces the ambiguous saddle configurations marching cubes
// has, at the cost of more and thinner triangles.
func (f *ScalarField) IsosurfaceTetrahedrons(threshold float64, orientation SurfaceOrientation) []r3.Vec {
	glog.V(2).Infof("extracting isosurface (marching tetrahedrons), threshold %g", threshold)

	var out []r3.Vec
	var vertices [8]r3.Vec
	var values [8]float64
	for i := -1; i < f.SizeX(); i++ {
		for j := -1; j < f.SizeY(); j++ {
			for k := -1; k < f.SizeZ(); k++ {
				vertices[0] = f.Grid2Geo(Pos{i, j, k})
				values[0] = f.Get(i, j, k)
				vertices[1] = f.Grid2Geo(Pos{i + 1, j, k})
				values[1] = f.Get(i+1, j, k)
				vertices[2] = f.Grid2Geo(Pos{i, j + 1, k})
				values[2] = f.Get(i, j+1, k)
				vertices[3] = f.Grid2Geo(Pos{i + 1, j + 1, k})
				values[3] = f.Get(i+1, j+1, k)
				vertices[4] = f.Grid2Geo(Pos{i, j, k + 1})
				values[4] = f.Get(i, j, k+1)
				vertices[5] = f.Grid2Geo(Pos{i + 1, j, k + 1})
				values[5] = f.Get(i+1, j, k+1)
				vertices[6] = f.Grid2Geo(Pos{i, j + 1, k + 1})
				values[6] = f.Get(i, j+1, k+1)
				vertices[7] = f.Grid2Geo(Pos{i + 1, j + 1, k + 1})
				values[7] = f.Get(i+1, j+1, k+1)

				for _, tet := range cellTetrahedra {
					a, b, c, d := tet[0], tet[1], tet[2], tet[3]
					out = isoFromTetrahedron(out,
						vertices[a], values[a],
						vertices[b], values[b],
						vertices[c], values[c],
						vertices[d], values[d],
						threshold, orientation)
				}
			}
		}
	}
	glog.V(2).Infof("isosurface done, %d triangles", len(out)/3)
	return out
}

// cellTetrahedra decomposes a cell into six tetrahedra around the
// 0-7 diagonal, in the corner numbering of IsosurfaceTetrahedrons.
var cellTetrahedra = [6][4]int{
	{0, 5, 7, 4},
	{0, 1, 7, 5},
	{0, 1, 3, 7},
	{0, 7, 6, 4},
	{0, 7, 2, 6},
	{0, 3, 2, 7},
}

// IsosurfaceMesh extracts the isosurface with the chosen algorithm and
// assembles the triangle soup into an indexed Mesh, merging vertices
// at identical coordinates.
func (f *ScalarField) IsosurfaceMesh(threshold float64, orientation SurfaceOrientation, algorithm IsosurfaceAlgorithm) *Mesh {
	var vertices []r3.Vec
	switch algorithm {
	case MarchingCubes:
		vertices = f.IsosurfaceCubes(threshold, orientation)
	case MarchingTetrahedrons:
		vertices = f.IsosurfaceTetrahedrons(threshold, orientation)
	default:
		panic("volume: unknown isosurface algorithm")
	}

	var m Mesh
	AppendTriangles(&m, vertices)
	return &m
}
