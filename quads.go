package volume

import "gonum.org/v1/gonum/spatial/r3"

// Quads visualizes the isosurface as the set of unit quads separating
// voxels on different sides of the threshold. Every consecutive
// quadruple of returned points defines one world-space quad; winding is
// fixed per face direction so orientation stays consistent.
func (f *ScalarField) Quads(threshold float64, orientation SurfaceOrientation) []r3.Vec {
	var quads []r3.Vec

	crossing := func(v, neighbor float64) bool {
		return (v > threshold && neighbor <= threshold && orientation == ToMin) ||
			(v < threshold && neighbor >= threshold && orientation == ToMax)
	}
	corner := func(x, y, z float64) r3.Vec {
		return f.Grid2GeoF(r3.Vec{X: x, Y: y, Z: z})
	}

	for i := 0; i < f.SizeX(); i++ {
		for j := 0; j < f.SizeY(); j++ {
			for k := 0; k < f.SizeZ(); k++ {
				v := f.Get(i, j, k)
				x, y, z := float64(i), float64(j), float64(k)

				// left
				if crossing(v, f.Get(i-1, j, k)) {
					quads = append(quads,
						corner(x-0.5, y-0.5, z-0.5),
						corner(x-0.5, y-0.5, z+0.5),
						corner(x-0.5, y+0.5, z+0.5),
						corner(x-0.5, y+0.5, z-0.5))
				}
				// right
				if crossing(v, f.Get(i+1, j, k)) {
					quads = append(quads,
						corner(x+0.5, y+0.5, z-0.5),
						corner(x+0.5, y+0.5, z+0.5),
						corner(x+0.5, y-0.5, z+0.5),
						corner(x+0.5, y-0.5, z-0.5))
				}
				// bottom
				if crossing(v, f.Get(i, j-1, k)) {
					quads = append(quads,
						corner(x-0.5, y-0.5, z-0.5),
						corner(x+0.5, y-0.5, z-0.5),
						corner(x+0.5, y-0.5, z+0.5),
						corner(x-0.5, y-0.5, z+0.5))
				}
				// top
				if crossing(v, f.Get(i, j+1, k)) {
					quads = append(quads,
						corner(x-0.5, y+0.5, z+0.5),
						corner(x+0.5, y+0.5, z+0.5),
						corner(x+0.5, y+0.5, z-0.5),
						corner(x-0.5, y+0.5, z-0.5))
				}
				// back
				if crossing(v, f.Get(i, j, k-1)) {
					quads = append(quads,
						corner(x-0.5, y-0.5, z-0.5),
						corner(x-0.5, y+0.5, z-0.5),
						corner(x+0.5, y+0.5, z-0.5),
						corner(x+0.5, y-0.5, z-0.5))
				}
				// front
				if crossing(v, f.Get(i, j, k+1)) {
					quads = append(quads,
						corner(x+0.5, y-0.5, z+0.5),
						corner(x+0.5, y+0.5, z+0.5),
						corner(x-0.5, y+0.5, z+0.5),
						corner(x-0.5, y-0.5, z+0.5))
				}
			}
		}
	}
	return quads
}

// QuadMesh extracts the separating quads as an indexed mesh, two
// triangles per quad. The 4 points of each quad are appended as fresh
// vertices without deduplication across adjacent quads; downstream
// consumers rely on the per-quad vertex layout.
func (f *ScalarField) QuadMesh(threshold float64, orientation SurfaceOrientation) *Mesh {
	mesh := new(Mesh)
	AppendQuads(mesh, f.Quads(threshold, orientation))
	return mesh
}

// AppendQuads appends a quad vertex stream, as produced by Quads, to a
// mesh sink. Each consecutive quadruple becomes 4 vertices and 2 faces.
func AppendQuads(dst MeshBuilder, quads []r3.Vec) {
	base := make([]int, 4)
	for q := 0; q+3 < len(quads); q += 4 {
		for c := 0; c < 4; c++ {
			base[c] = dst.AppendVertex(quads[q+c])
		}
		dst.AppendFace(base[0], base[1], base[3])
		dst.AppendFace(base[1], base[2], base[3])
	}
}
