package volume

import (
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/spatial/r3"
)

// SurfaceOrientation selects which side of a threshold crossing a
// surface faces: ToMin emits surface where the field drops below the
// threshold in the traversal direction, ToMax is the mirror test.
type SurfaceOrientation int

const (
	ToMin SurfaceOrientation = iota
	ToMax
)

// IsosurfaceAlgorithm selects the isosurface extraction algorithm used
// by IsosurfaceMesh.
type IsosurfaceAlgorithm int

const (
	// MarchingCubes is fast and emits few primitives but has ambiguous
	// face-saddle cases.
	MarchingCubes IsosurfaceAlgorithm = iota
	// MarchingTetrahedrons emits more primitives but is topologically
	// unambiguous.
	MarchingTetrahedrons
)

// ScalarField is a georeferenced volume of scalar values.
type ScalarField struct {
	GeoVolume[float64]
}

// Bitfield is a georeferenced volume of boolean values, typically a
// point sampling of a solid's boundary.
type Bitfield struct {
	GeoVolume[bool]
}

// NewScalarField constructs a scalar field over an octree backend.
func NewScalarField(lower, upper r3.Vec, voxelSize, initValue float64) *ScalarField {
	return &ScalarField{*NewGeoVolume(lower, upper, voxelSize, initValue)}
}

// NewScalarFieldArray constructs a scalar field over a dense array
// backend, which supports parallel line mutation (see Downscale).
func NewScalarFieldArray(lower, upper r3.Vec, voxelSize, initValue float64) *ScalarField {
	return &ScalarField{*NewGeoVolumeArray(lower, upper, voxelSize, initValue)}
}

// NewBitfield constructs an all-false bitfield over an octree backend.
func NewBitfield(lower, upper r3.Vec, voxelSize float64) *Bitfield {
	return &Bitfield{*NewGeoVolume(lower, upper, voxelSize, false)}
}

// Downscale shrinks the field resolution by an integer factor. The field
// is low-pass filtered in place with a separable Catmull-Rom FIR kernel
// (cutoff period max(2, 2*factor)) along X, Y and Z, then resampled by
// nearest-voxel copy into a field with factor-times coarser voxels whose
// origin is shifted by half the size delta so coarse voxel centers align
// with the filtered signal. The receiver is replaced by the new field.
//
// Per-axis voxel counts become ceil(n/factor) and the voxel size becomes
// voxelSize*factor.
func (f *ScalarField) Downscale(factor int) {
	if factor < 1 {
		panic("volume: downscale factor must be positive")
	}
	glog.V(2).Infof("downscaling volume by factor %d", factor)
	cutoff := math.Max(2, float64(2*factor))

	directions := [3]Delta{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for axis, diff := range directions {
		glog.V(2).Infof("filtering volume in axis %d", axis)
		filterInplace(newCatmullRomFilter(cutoff), diff, f.grid)
	}

	glog.V(2).Info("collecting filtered data")

	shift := float64(factor-1) * f.voxelSize / 2
	ll := r3.Vec{X: f.lower.X - shift, Y: f.lower.Y - shift, Z: f.lower.Z - shift}
	coarse := f.voxelSize * float64(factor)
	uu := r3.Vec{
		X: ll.X + float64(ceilDiv(f.SizeX(), factor))*coarse,
		Y: ll.Y + float64(ceilDiv(f.SizeY(), factor))*coarse,
		Z: ll.Z + float64(ceilDiv(f.SizeZ(), factor))*coarse,
	}

	var tmp *ScalarField
	if _, dense := f.grid.(*Array[float64]); dense {
		tmp = NewScalarFieldArray(ll, uu, coarse, 0)
	} else {
		tmp = NewScalarField(ll, uu, coarse, 0)
	}

	// Nearest-voxel resample via paired iterators: unit steps over the
	// new grid, factor-sized steps over the filtered one.
	fine := Delta{factor, 0, 0}
	xitN, xendN := beginEnd(tmp.grid, Pos{}, Delta{1, 0, 0})
	xitO, xendO := beginEnd(f.grid, Pos{}, fine)
	for xitN != xendN && xitO != xendO {
		yitN, yendN := beginEnd(tmp.grid, xitN.Pos, Delta{0, 1, 0})
		yitO, yendO := beginEnd(f.grid, xitO.Pos, Delta{0, factor, 0})
		for yitN != yendN && yitO != yendO {
			zitN, zendN := beginEnd(tmp.grid, yitN.Pos, Delta{0, 0, 1})
			zitO, zendO := beginEnd(f.grid, yitO.Pos, Delta{0, 0, factor})
			for zitN != zendN && zitO != zendO {
				zitN.SetValue(zitO.Value())
				zitN, zitO = zitN.Step(), zitO.Step()
			}
			yitN, yitO = yitN.Step(), yitO.Step()
		}
		xitN, xitO = xitN.Step(), xitO.Step()
	}

	*f = *tmp
}

func beginEnd[T comparable](g Grid[T], start Pos, diff Delta) (begin, end LineIter[T]) {
	begin = NewLineIter(g, start, diff)
	return begin, begin.End()
}

func ceilDiv(n, f int) int {
	return (n + f - 1) / f
}
