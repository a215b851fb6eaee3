package volume

import (
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/spatial/r3"
)

// poll accumulates inside/outside votes for one voxel. Counters
// saturate rather than wrap.
type poll struct {
	positives, negatives uint8
}

func satInc(c uint8) uint8 {
	if c == math.MaxUint8 {
		return c
	}
	return c + 1
}

// pollResult decides a poll by simple majority, ties going outside.
func pollResult(p poll) float64 {
	if p.positives > p.negatives {
		return 1
	}
	return -1
}

// Reconstruct builds a solid from a bitfield sampling its boundary,
// using a modified Nooruddin/Turk parity-counting method. Delta is the
// inverse of the sampling's linear density: roughly the euclidean
// distance between neighboring samples, measured along the boundary.
//
// Scanlines along the three axes count crossings of the delta
// neighborhood of the boundary samples; voxels between an odd number
// of crossings and the line start vote inside, the rest vote outside,
// and a per-voxel majority over all lines decides. The resulting
// +1/-1 membership field is smoothed with a separable low-pass filter
// of the given cutoff period so that isosurface extraction at
// threshold 0 yields a watertight boundary.
func Reconstruct(from *Bitfield, delta, filterCutoffPeriod float64) *ScalarField {
	f := NewScalarFieldArray(from.Lower(), from.Upper(), from.VoxelSize(), 0)
	glog.V(2).Infof("reconstructing solid, volume is (%d, %d, %d)",
		f.SizeX(), f.SizeY(), f.SizeZ())

	vfield := NewArray(f.SizeX(), f.SizeY(), f.SizeZ(), poll{})
	deltaVoxels := delta / from.VoxelSize()

	directions := [3]Delta{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, diff := range directions {
		for _, start := range LineStarts(from.Grid(), diff) {
			scanline(NewLineIter(from.Grid(), start, diff), vfield, deltaVoxels)
		}
	}

	for i := 0; i < f.SizeX(); i++ {
		for j := 0; j < f.SizeY(); j++ {
			for k := 0; k < f.SizeZ(); k++ {
				f.Set(i, j, k, pollResult(vfield.Get(i, j, k)))
			}
		}
	}

	glog.V(2).Info("smoothing membership field")
	for _, diff := range directions {
		filterInplace(newCatmullRomFilter(filterCutoffPeriod), diff, f.grid)
	}
	return f
}

// ReconstructCloud is Reconstruct over a point cloud: the cloud is
// rasterized into a boundary bitfield at the given voxel size first.
func ReconstructCloud(cloud PointCloud, voxelSize, delta, filterCutoffPeriod float64) *ScalarField {
	bounds := cloud.Bounds()
	bitfield := NewBitfield(bounds.Min, bounds.Max, voxelSize)
	cloud.Iterate(func(point r3.Vec) bool {
		bitfield.FSet(point, true)
		return true
	})
	return Reconstruct(bitfield, delta, filterCutoffPeriod)
}

// scanline walks one line through the boundary bitfield and updates the
// voting field. Boundary samples at most deltaVoxels steps apart merge
// into a single crossing spanning their delta neighborhood; voxels
// inside a crossing vote both ways, voxels outside vote by the parity
// of the crossings completed before them.
func scanline(begin LineIter[bool], vfield Grid[poll], deltaVoxels float64) {
	end := begin.End()

	type span struct{ lo, hi float64 }
	var spans []span
	var prev float64
	for it := begin; it != end; it = it.Step() {
		if !it.Value() {
			continue
		}
		t := float64(it.Sub(begin))
		if len(spans) > 0 && t-prev <= deltaVoxels {
			spans[len(spans)-1].hi = t + deltaVoxels
		} else {
			spans = append(spans, span{t - deltaVoxels, t + deltaVoxels})
		}
		prev = t
	}

	for it := begin; it != end; it = it.Step() {
		t := float64(it.Sub(begin))

		completed := 0
		inside := false
		for _, s := range spans {
			if s.hi < t {
				completed++
				continue
			}
			inside = t >= s.lo
			break
		}

		p := vfield.Get(it.Pos[0], it.Pos[1], it.Pos[2])
		switch {
		case inside:
			p.positives = satInc(p.positives)
			p.negatives = satInc(p.negatives)
		case completed%2 == 1:
			p.positives = satInc(p.positives)
		default:
			p.negatives = satInc(p.negatives)
		}
		vfield.Set(it.Pos[0], it.Pos[1], it.Pos[2], p)
	}
}
