package volume

import (
	"github.com/volgeo/volume/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// PointCloud is the upstream collaborator contract: a set of 3D points
// with known world-space bounds. Iterate calls fn for every point in
// forward order until fn returns false.
type PointCloud interface {
	Bounds() r3.Box
	Iterate(fn func(p r3.Vec) bool)
}

// Points adapts a point slice to the PointCloud interface.
type Points []r3.Vec

// Bounds returns the axis-aligned bounding box of the points.
func (pts Points) Bounds() r3.Box {
	if len(pts) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = d3.MinElem(b.Min, p)
		b.Max = d3.MaxElem(b.Max, p)
	}
	return b
}

// Iterate calls fn for every point until fn returns false.
func (pts Points) Iterate(fn func(p r3.Vec) bool) {
	for _, p := range pts {
		if !fn(p) {
			return
		}
	}
}
