package volume

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rounding selects how a fractional grid coordinate maps to a voxel
// index in Geo2Grid.
type Rounding int

const (
	RoundNearest Rounding = iota
	RoundDown
	RoundUp
)

// GeoVolume wraps a grid backend with world-space georeferencing: a
// lower and upper corner and a voxel size. Grid indices address voxel
// centers, so index p corresponds to the world point
// lower + (p+0.5)*voxelSize.
type GeoVolume[T comparable] struct {
	grid         Grid[T]
	lower, upper r3.Vec
	voxelSize    float64
}

// NewGeoVolume constructs a georeferenced volume over an octree backend.
// The upper corner is corrected upward so that the extents are an exact
// integer multiple of voxelSize along every axis.
func NewGeoVolume[T comparable](lower, upper r3.Vec, voxelSize float64, initValue T) *GeoVolume[T] {
	return newGeoVolume(lower, upper, voxelSize, func(x, y, z int) Grid[T] {
		return NewOctree(x, y, z, initValue)
	})
}

// NewGeoVolumeArray is NewGeoVolume over a dense array backend.
func NewGeoVolumeArray[T comparable](lower, upper r3.Vec, voxelSize float64, initValue T) *GeoVolume[T] {
	return newGeoVolume(lower, upper, voxelSize, func(x, y, z int) Grid[T] {
		return NewArray(x, y, z, initValue)
	})
}

func newGeoVolume[T comparable](lower, upper r3.Vec, voxelSize float64, mk func(x, y, z int) Grid[T]) *GeoVolume[T] {
	sizeX := int(math.Ceil((upper.X - lower.X) / voxelSize))
	sizeY := int(math.Ceil((upper.Y - lower.Y) / voxelSize))
	sizeZ := int(math.Ceil((upper.Z - lower.Z) / voxelSize))
	g := &GeoVolume[T]{
		grid:      mk(sizeX, sizeY, sizeZ),
		lower:     lower,
		voxelSize: voxelSize,
	}
	// Extents must be voxelSize divisible.
	g.upper = r3.Vec{
		X: lower.X + float64(sizeX)*voxelSize,
		Y: lower.Y + float64(sizeY)*voxelSize,
		Z: lower.Z + float64(sizeZ)*voxelSize,
	}
	return g
}

// Lower returns the world-space lower corner.
func (g *GeoVolume[T]) Lower() r3.Vec { return g.lower }

// Upper returns the corrected world-space upper corner.
func (g *GeoVolume[T]) Upper() r3.Vec { return g.upper }

// Bounds returns the world-space extents as a box.
func (g *GeoVolume[T]) Bounds() r3.Box { return r3.Box{Min: g.lower, Max: g.upper} }

// VoxelSize returns the world-space edge length of one voxel.
func (g *GeoVolume[T]) VoxelSize() float64 { return g.voxelSize }

// Grid returns the storage backend.
func (g *GeoVolume[T]) Grid() Grid[T] { return g.grid }

func (g *GeoVolume[T]) SizeX() int { return g.grid.SizeX() }
func (g *GeoVolume[T]) SizeY() int { return g.grid.SizeY() }
func (g *GeoVolume[T]) SizeZ() int { return g.grid.SizeZ() }

// Get forwards to the backend.
func (g *GeoVolume[T]) Get(i, j, k int) T { return g.grid.Get(i, j, k) }

// Set forwards to the backend.
func (g *GeoVolume[T]) Set(i, j, k int, v T) { g.grid.Set(i, j, k, v) }

// FGet reads the voxel nearest to the world-space point p.
func (g *GeoVolume[T]) FGet(p r3.Vec) T {
	gp := g.Geo2Grid(p, RoundNearest, RoundNearest, RoundNearest)
	return g.grid.Get(gp[0], gp[1], gp[2])
}

// FSet writes the voxel nearest to the world-space point p.
func (g *GeoVolume[T]) FSet(p r3.Vec, v T) {
	gp := g.Geo2Grid(p, RoundNearest, RoundNearest, RoundNearest)
	g.grid.Set(gp[0], gp[1], gp[2], v)
}

// Geo2GridF maps a world-space point to fractional grid coordinates.
// Integer coordinates land on voxel centers.
func (g *GeoVolume[T]) Geo2GridF(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: (p.X-g.lower.X)/(g.upper.X-g.lower.X)*float64(g.grid.SizeX()) - 0.5,
		Y: (p.Y-g.lower.Y)/(g.upper.Y-g.lower.Y)*float64(g.grid.SizeY()) - 0.5,
		Z: (p.Z-g.lower.Z)/(g.upper.Z-g.lower.Z)*float64(g.grid.SizeZ()) - 0.5,
	}
}

// Geo2Grid maps a world-space point to a voxel index, rounding each axis
// independently per the given mode.
func (g *GeoVolume[T]) Geo2Grid(p r3.Vec, rx, ry, rz Rounding) Pos {
	fp := g.Geo2GridF(p)
	return Pos{
		roundAxis(fp.X, rx),
		roundAxis(fp.Y, ry),
		roundAxis(fp.Z, rz),
	}
}

func roundAxis(v float64, r Rounding) int {
	switch r {
	case RoundDown:
		return int(math.Floor(v))
	case RoundUp:
		return int(math.Ceil(v))
	default:
		return int(math.Round(v))
	}
}

// Grid2Geo maps a voxel index to the world-space coordinate of its
// center. It is the exact inverse of Geo2Grid with nearest rounding.
func (g *GeoVolume[T]) Grid2Geo(p Pos) r3.Vec {
	return g.Grid2GeoF(p.Vec())
}

// Grid2GeoF maps fractional grid coordinates to world space.
func (g *GeoVolume[T]) Grid2GeoF(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: g.lower.X + (p.X+0.5)/float64(g.grid.SizeX())*(g.upper.X-g.lower.X),
		Y: g.lower.Y + (p.Y+0.5)/float64(g.grid.SizeY())*(g.upper.Y-g.lower.Y),
		Z: g.lower.Z + (p.Z+0.5)/float64(g.grid.SizeZ())*(g.upper.Z-g.lower.Z),
	}
}
