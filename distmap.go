package volume

import (
	"github.com/chewxy/math32"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/spatial/r3"
)

// distVec holds per-axis voxel offsets to the nearest feature, the
// state of Danielsson's four-point sequential Euclidean distance
// transform (4SED).
type distVec [3]float32

func (v distVec) add(o distVec) distVec {
	return distVec{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v distVec) norm2() float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// dvMin picks the vector with the smaller euclidean norm, preferring
// the first on ties.
func dvMin(a, b distVec) distVec {
	if a.norm2() <= b.norm2() {
		return a
	}
	return b
}

// DistanceMap computes the euclidean distance to the nearest set voxel
// of the bitfield, up to initValue. The result shares the bitfield's
// georeferencing; voxels farther than initValue keep initValue. Uses
// Danielsson's 4SED vector propagation, which is exact for axis-aligned
// features and close to exact in general.
func DistanceMap(bitfield *Bitfield, initValue float64) *ScalarField {
	f := NewScalarField(bitfield.Lower(), bitfield.Upper(), bitfield.VoxelSize(), initValue)

	dv := newDistVecField(f, initValue)
	for i := 0; i < bitfield.SizeX(); i++ {
		for j := 0; j < bitfield.SizeY(); j++ {
			for k := 0; k < bitfield.SizeZ(); k++ {
				if bitfield.Get(i, j, k) {
					dv.Set(i, j, k, distVec{})
				}
			}
		}
	}

	scanVolume(dv)
	collectDistances(f, dv, initValue)
	return f
}

// DistanceMapFromCloud computes the euclidean distance to the nearest
// cloud point, up to initValue, over a voxelSize grid covering the
// cloud's bounds. Each point seeds the eight voxels around it with its
// exact sub-voxel offsets, so distances near features are not snapped
// to voxel centers.
func DistanceMapFromCloud(cloud PointCloud, voxelSize, initValue float64) *ScalarField {
	bounds := cloud.Bounds()
	f := NewScalarField(bounds.Min, bounds.Max, voxelSize, initValue)

	glog.V(2).Infof("corrected extents: %v %v", f.Lower(), f.Upper())
	glog.V(2).Infof("volume is (%d, %d, %d)", f.SizeX(), f.SizeY(), f.SizeZ())

	dv := newDistVecField(f, initValue)
	cloud.Iterate(func(point r3.Vec) bool {
		fpos := f.Geo2GridF(point)

		for _, rx := range [2]Rounding{RoundDown, RoundUp} {
			for _, ry := range [2]Rounding{RoundDown, RoundUp} {
				for _, rz := range [2]Rounding{RoundDown, RoundUp} {
					pos := f.Geo2Grid(point, rx, ry, rz)
					cur := dv.Get(pos[0], pos[1], pos[2])
					dv.Set(pos[0], pos[1], pos[2], distVec{
						math32.Min(math32.Abs(float32(float64(pos[0])-fpos.X)), cur[0]),
						math32.Min(math32.Abs(float32(float64(pos[1])-fpos.Y)), cur[1]),
						math32.Min(math32.Abs(float32(float64(pos[2])-fpos.Z)), cur[2]),
					})
				}
			}
		}
		return true
	})

	scanVolume(dv)
	collectDistances(f, dv, initValue)
	return f
}

// newDistVecField allocates the vector field, seeded everywhere with
// the voxel-space equivalent of initValue. Octree backed: the far
// regions stay collapsed until the sweeps reach them.
func newDistVecField(f *ScalarField, initValue float64) *Octree[distVec] {
	infty := float32(initValue / f.VoxelSize())
	return NewOctree(f.SizeX(), f.SizeY(), f.SizeZ(), distVec{infty, infty, infty})
}

// collectDistances converts the vector field into scalar distances,
// writing only voxels that came out closer than initValue.
func collectDistances(f *ScalarField, dv *Octree[distVec], initValue float64) {
	for i := 0; i < f.SizeX(); i++ {
		for j := 0; j < f.SizeY(); j++ {
			for k := 0; k < f.SizeZ(); k++ {
				dist := f.VoxelSize() * float64(math32.Sqrt(dv.Get(i, j, k).norm2()))
				if dist < initValue {
					f.Set(i, j, k, dist)
				}
			}
		}
	}
}

type scanDir int

const (
	scanAsc scanDir = iota
	scanDesc
)

// scanVolume runs the two 4SED passes: planes ascending in Z pulling
// from below, then descending pulling from above.
func scanVolume(dv *Octree[distVec]) {
	glog.V(2).Info("distance transform: Z ascending pass")
	for k := 1; k < dv.SizeZ(); k++ {
		scanPlane(dv, k, scanAsc)
	}
	glog.V(2).Info("distance transform: Z descending pass")
	for k := dv.SizeZ() - 2; k >= 0; k-- {
		scanPlane(dv, k, scanDesc)
	}
}

// scanPlane propagates vectors within the XY plane at depth k: first
// from the neighboring plane along Z, then line sweeps up and down the
// Y axis.
func scanPlane(dv *Octree[distVec], k int, dir scanDir) {
	dk := -1
	if dir == scanDesc {
		dk = 1
	}
	for i := 0; i < dv.SizeX(); i++ {
		for j := 0; j < dv.SizeY(); j++ {
			dv.Set(i, j, k, dvMin(
				dv.Get(i, j, k),
				dv.Get(i, j, k+dk).add(distVec{0, 0, 1})))
		}
	}

	for j := 1; j < dv.SizeY(); j++ {
		scanLine(dv, j, k, scanAsc)
	}
	for j := dv.SizeY() - 2; j >= 0; j-- {
		scanLine(dv, j, k, scanDesc)
	}
}

// scanLine propagates along one X line: from the neighboring line
// along Y, then forward and backward along X.
func scanLine(dv *Octree[distVec], j, k int, dir scanDir) {
	dj := -1
	if dir == scanDesc {
		dj = 1
	}
	for i := 0; i < dv.SizeX(); i++ {
		dv.Set(i, j, k, dvMin(
			dv.Get(i, j, k),
			dv.Get(i, j+dj, k).add(distVec{0, 1, 0})))
	}

	for i := 1; i < dv.SizeX(); i++ {
		dv.Set(i, j, k, dvMin(
			dv.Get(i, j, k),
			dv.Get(i-1, j, k).add(distVec{1, 0, 0})))
	}
	for i := dv.SizeX() - 2; i >= 0; i-- {
		dv.Set(i, j, k, dvMin(
			dv.Get(i, j, k),
			dv.Get(i+1, j, k).add(distVec{1, 0, 0})))
	}
}
