package volume

// Array is a dense voxel grid backed by a single contiguous buffer. It
// offers the same access contract as Octree with O(1) reads and writes
// and no shared structure between voxels, which makes it the backend of
// choice for operations that mutate lines of voxels in parallel.
type Array[T comparable] struct {
	sizeX, sizeY, sizeZ int
	initValue           T
	data                []T
}

// NewArray constructs a dense grid with the given extents, initialized
// everywhere to initValue.
func NewArray[T comparable](sizeX, sizeY, sizeZ int, initValue T) *Array[T] {
	data := make([]T, sizeX*sizeY*sizeZ)
	for i := range data {
		data[i] = initValue
	}
	return &Array[T]{
		sizeX:     sizeX,
		sizeY:     sizeY,
		sizeZ:     sizeZ,
		initValue: initValue,
		data:      data,
	}
}

func (g *Array[T]) SizeX() int { return g.sizeX }
func (g *Array[T]) SizeY() int { return g.sizeY }
func (g *Array[T]) SizeZ() int { return g.sizeZ }

// Get returns the value at (i,j,k), or the initial value when the
// position is out of range.
func (g *Array[T]) Get(i, j, k int) T {
	if i < 0 || i >= g.sizeX || j < 0 || j >= g.sizeY || k < 0 || k >= g.sizeZ {
		return g.initValue
	}
	return g.data[k+j*g.sizeZ+i*g.sizeZ*g.sizeY]
}

// Set writes the value at (i,j,k). Out-of-range positions are ignored.
func (g *Array[T]) Set(i, j, k int, v T) {
	if i < 0 || i >= g.sizeX || j < 0 || j >= g.sizeY || k < 0 || k >= g.sizeZ {
		return
	}
	g.data[k+j*g.sizeZ+i*g.sizeZ*g.sizeY] = v
}
