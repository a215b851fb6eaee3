package volume

import (
	"math/rand"
	"testing"
)

func TestOctreeArrayEquivalence(t *testing.T) {
	const sx, sy, sz = 13, 9, 6
	oct := NewOctree(sx, sy, sz, -1)
	arr := NewArray(sx, sy, sz, -1)

	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 4000; n++ {
		// Includes out-of-range writes, which must be no-ops on both.
		i := rng.Intn(sx+4) - 2
		j := rng.Intn(sy+4) - 2
		k := rng.Intn(sz+4) - 2
		v := rng.Intn(3)
		oct.Set(i, j, k, v)
		arr.Set(i, j, k, v)
	}

	for i := -2; i < sx+2; i++ {
		for j := -2; j < sy+2; j++ {
			for k := -2; k < sz+2; k++ {
				if got, want := oct.Get(i, j, k), arr.Get(i, j, k); got != want {
					t.Fatalf("backend mismatch at (%d,%d,%d): octree %d, array %d", i, j, k, got, want)
				}
			}
		}
	}
}

func TestOctreeOutOfRange(t *testing.T) {
	g := NewOctree(4, 4, 4, 7)
	if got := g.Get(-1, 0, 0); got != 7 {
		t.Errorf("out of range get: got %d. want 7", got)
	}
	if got := g.Get(0, 4, 0); got != 7 {
		t.Errorf("out of range get: got %d. want 7", got)
	}
	g.Set(4, 0, 0, 1)
	g.Set(0, -1, 0, 1)
	if got := g.NodeCount(); got != 1 {
		t.Errorf("out of range set split the tree: %d nodes. want 1", got)
	}
}

func TestOctreeSplitCollapse(t *testing.T) {
	const size = 8
	g := NewOctree(size, size, size, 0)
	if got := g.NodeCount(); got != 1 {
		t.Fatalf("uniform tree: got %d nodes. want 1", got)
	}

	g.Set(0, 0, 0, 1)
	split := g.NodeCount()
	if split <= 1 {
		t.Fatalf("single differing voxel did not split: %d nodes", split)
	}

	// Rewriting the voxel with the background value must collapse the
	// tree back to a single solid node.
	g.Set(0, 0, 0, 0)
	if got := g.NodeCount(); got != 1 {
		t.Errorf("collapse after rewrite: got %d nodes. want 1", got)
	}

	// Filling the whole volume with one value collapses no matter the
	// write order.
	rng := rand.New(rand.NewSource(2))
	order := rng.Perm(size * size * size)
	for _, n := range order {
		g.Set(n/(size*size), n/size%size, n%size, 5)
	}
	if got := g.Get(3, 3, 3); got != 5 {
		t.Errorf("fill: got %d. want 5", got)
	}
	if got := g.NodeCount(); got != 1 {
		t.Errorf("filled tree: got %d nodes. want 1", got)
	}
}

func TestOctreeMemUsed(t *testing.T) {
	g := NewOctree(16, 16, 16, 0)
	before := g.MemUsed()
	g.Set(1, 2, 3, 1)
	if after := g.MemUsed(); after <= before {
		t.Errorf("memory did not grow on split: %d -> %d", before, after)
	}
}

func TestArrayOutOfRange(t *testing.T) {
	g := NewArray(3, 3, 3, 9)
	if got := g.Get(3, 0, 0); got != 9 {
		t.Errorf("out of range get: got %d. want 9", got)
	}
	g.Set(0, 0, -1, 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				if got := g.Get(i, j, k); got != 9 {
					t.Fatalf("out of range set leaked into (%d,%d,%d)", i, j, k)
				}
			}
		}
	}
}
