package volume

import "gonum.org/v1/gonum/spatial/r3"

// MeshBuilder is the sink contract for indexed mesh output. The
// surrounding geometry toolkit's mesh containers satisfy it; Mesh is a
// minimal in-package implementation.
type MeshBuilder interface {
	// AppendVertex appends a vertex and returns its index.
	AppendVertex(v r3.Vec) int
	// AppendFace appends a triangular face by vertex indices.
	AppendFace(a, b, c int)
}

// Mesh is a minimal indexed triangle mesh.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// AppendVertex appends a vertex and returns its index.
func (m *Mesh) AppendVertex(v r3.Vec) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AppendFace appends a triangular face by vertex indices.
func (m *Mesh) AppendFace(a, b, c int) {
	m.Faces = append(m.Faces, [3]int{a, b, c})
}

// AppendTriangles appends a triangle vertex stream (each consecutive
// triple one triangle) to a mesh sink, deduplicating coincident
// vertices by exact coordinate. Triangles whose deduplicated indices
// are not pairwise distinct are dropped as degenerate.
func AppendTriangles(dst MeshBuilder, soup []r3.Vec) {
	ids := make(map[r3.Vec]int)
	var idx [3]int
	for t := 0; t+2 < len(soup); t += 3 {
		for v := 0; v < 3; v++ {
			p := soup[t+v]
			id, ok := ids[p]
			if !ok {
				id = dst.AppendVertex(p)
				ids[p] = id
			}
			idx[v] = id
		}
		if idx[0] == idx[1] || idx[0] == idx[2] || idx[1] == idx[2] {
			continue
		}
		dst.AppendFace(idx[0], idx[1], idx[2])
	}
}
