package volume

import "unsafe"

// Octant bit flags. A set bit selects the +X/+Y/+Z half of the parent node.
const (
	octX = 0x04
	octY = 0x02
	octZ = 0x01
)

// Octree is a compressed voxel grid. Each node owns a cube whose edge
// length is a power of two; uniform regions are represented by a single
// solid node and writes split or collapse nodes so that memory stays
// proportional to the complexity of the value boundary rather than to
// the voxel count.
type Octree[T comparable] struct {
	root                *onode[T]
	rootSize            int
	sizeX, sizeY, sizeZ int
	initValue           T
}

// onode is either solid, carrying a single value for its whole cube, or
// gray, delegating to 8 children each owning half the edge length.
// Invariant: a gray node's children are never all solid with one value;
// such nodes collapse immediately on write.
type onode[T comparable] struct {
	gray  bool
	value T
	sub   *[8]onode[T] // octant-indexed, nil unless gray
}

// NewOctree constructs an octree grid with the given logical extents,
// initialized everywhere to initValue. The root cube edge is the smallest
// power of two covering the largest extent.
func NewOctree[T comparable](sizeX, sizeY, sizeZ int, initValue T) *Octree[T] {
	rootSize := 1
	for rootSize < maxInt(sizeX, maxInt(sizeY, sizeZ)) {
		rootSize <<= 1
	}
	return &Octree[T]{
		root:      &onode[T]{value: initValue},
		rootSize:  rootSize,
		sizeX:     sizeX,
		sizeY:     sizeY,
		sizeZ:     sizeZ,
		initValue: initValue,
	}
}

func (g *Octree[T]) SizeX() int { return g.sizeX }
func (g *Octree[T]) SizeY() int { return g.sizeY }
func (g *Octree[T]) SizeZ() int { return g.sizeZ }

// Get returns the value at (i,j,k), or the initial value when the
// position is out of range.
func (g *Octree[T]) Get(i, j, k int) T {
	if i < 0 || i >= g.sizeX || j < 0 || j >= g.sizeY || k < 0 || k >= g.sizeZ {
		return g.initValue
	}
	return g.root.get(g.rootSize, Pos{i, j, k})
}

// Set writes the value at (i,j,k), splitting and collapsing nodes as
// needed. Out-of-range positions are ignored.
func (g *Octree[T]) Set(i, j, k int, v T) {
	if i < 0 || i >= g.sizeX || j < 0 || j >= g.sizeY || k < 0 || k >= g.sizeZ {
		return
	}
	g.root.set(g.rootSize, Pos{i, j, k}, v)
}

// NodeCount returns the number of tree nodes, a measure of how well the
// octree is compressing its contents.
func (g *Octree[T]) NodeCount() int {
	return g.root.count()
}

// MemUsed estimates the memory held by tree nodes in bytes.
func (g *Octree[T]) MemUsed() int {
	return g.root.count() * int(unsafe.Sizeof(onode[T]{}))
}

// findOctant selects the child octant containing p within a node of the
// given size.
func findOctant(nodeSize int, p Pos) int {
	if p[0] < 0 || p[0] >= nodeSize || p[1] < 0 || p[1] >= nodeSize || p[2] < 0 || p[2] >= nodeSize {
		panic("volume: position outside octree node")
	}
	oct := 0
	if p[0] >= nodeSize>>1 {
		oct |= octX
	}
	if p[1] >= nodeSize>>1 {
		oct |= octY
	}
	if p[2] >= nodeSize>>1 {
		oct |= octZ
	}
	return oct
}

// toOctant translates p into the local coordinates of the given octant.
func toOctant(oct, nodeSize int, p Pos) Pos {
	if oct&octX != 0 {
		p[0] -= nodeSize >> 1
	}
	if oct&octY != 0 {
		p[1] -= nodeSize >> 1
	}
	if oct&octZ != 0 {
		p[2] -= nodeSize >> 1
	}
	return p
}

func (n *onode[T]) get(nodeSize int, p Pos) T {
	if !n.gray {
		return n.value
	}
	oct := findOctant(nodeSize, p)
	return n.sub[oct].get(nodeSize>>1, toOctant(oct, nodeSize, p))
}

func (n *onode[T]) set(nodeSize int, p Pos, v T) {
	if !n.gray {
		if n.value == v {
			return
		}
		if nodeSize == 1 {
			// Finest granularity, overwrite in place.
			n.value = v
			return
		}
		// Split: the solid node becomes gray with 8 children holding
		// the former value.
		sub := new([8]onode[T])
		for i := range sub {
			sub[i].value = n.value
		}
		n.gray = true
		n.sub = sub
	}

	oct := findOctant(nodeSize, p)
	n.sub[oct].set(nodeSize>>1, toOctant(oct, nodeSize, p), v)

	// Collapse when all 8 children became solid with the written value.
	for i := range n.sub {
		if n.sub[i].gray || n.sub[i].value != v {
			return
		}
	}
	n.gray = false
	n.value = v
	n.sub = nil
}

func (n *onode[T]) count() int {
	c := 1
	if n.gray {
		for i := range n.sub {
			c += n.sub[i].count()
		}
	}
	return c
}
