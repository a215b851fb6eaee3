package volume

import "testing"

func TestLineIterCoverage(t *testing.T) {
	const sx, sy, sz = 5, 4, 3
	directions := []Delta{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for _, diff := range directions {
		g := NewArray(sx, sy, sz, 0)
		for _, start := range LineStarts[int](g, diff) {
			it, end := NewLineIter[int](g, start, diff), NewLineIter[int](g, start, diff).End()
			for it != end {
				it.SetValue(it.Value() + 1)
				it = it.Step()
			}
		}
		for i := 0; i < sx; i++ {
			for j := 0; j < sy; j++ {
				for k := 0; k < sz; k++ {
					if got := g.Get(i, j, k); got != 1 {
						t.Fatalf("diff %v: voxel (%d,%d,%d) visited %d times. want 1", diff, i, j, k, got)
					}
				}
			}
		}
	}
}

func TestLineIterEnd(t *testing.T) {
	g := NewArray(5, 5, 5, 0.0)

	it := NewLineIter[float64](g, Pos{0, 2, 2}, Delta{1, 0, 0})
	if end := it.End(); end.Pos != (Pos{5, 2, 2}) {
		t.Errorf("unit step end: got %v. want {5 2 2}", end.Pos)
	}

	it = NewLineIter[float64](g, Pos{4, 2, 2}, Delta{-1, 0, 0})
	if end := it.End(); end.Pos != (Pos{-1, 2, 2}) {
		t.Errorf("negative step end: got %v. want {-1 2 2}", end.Pos)
	}

	// A stride-2 line from 0 stops after positions 0 and 2: position 4
	// lies closer than half a stride to the clip plane.
	it = NewLineIter[float64](g, Pos{0, 0, 0}, Delta{2, 0, 0})
	if end := it.End(); end.Pos != (Pos{4, 0, 0}) {
		t.Errorf("stride 2 end: got %v. want {4 0 0}", end.Pos)
	}
}

func TestLineIterSub(t *testing.T) {
	g := NewArray(8, 8, 8, 0)
	a := NewLineIter[int](g, Pos{1, 2, 3}, Delta{0, 2, 0})
	b := a.StepN(3)
	if got := b.Sub(a); got != 3 {
		t.Errorf("got %d. want 3", got)
	}
	if got := a.Sub(b); got != -3 {
		t.Errorf("got %d. want -3", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("subtracting iterators with different displacements did not panic")
		}
	}()
	c := NewLineIter[int](g, Pos{1, 2, 3}, Delta{1, 0, 0})
	a.Sub(c)
}

func TestDeltaAxisPanics(t *testing.T) {
	for _, d := range []Delta{{}, {1, 1, 0}, {0, 2, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("axis of %v did not panic", d)
				}
			}()
			d.axis()
		}()
	}
}
