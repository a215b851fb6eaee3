package volume

import (
	"math"

	"github.com/volgeo/volume/internal/conc"
)

// firFilter is a low-pass FIR filter with weights sampled from an
// analytic kernel stretched to a given cutoff period.
type firFilter struct {
	halfWindow int
	weights    []float64 // 2*halfWindow+1 taps, centered
}

// newCatmullRomFilter samples the Catmull-Rom cubic kernel (support 2)
// scaled so that its support spans cutoffPeriod voxels on each side of
// the center.
func newCatmullRomFilter(cutoffPeriod float64) *firFilter {
	scale := cutoffPeriod / 2
	hw := int(math.Ceil(cutoffPeriod))
	w := make([]float64, 2*hw+1)
	for i := -hw; i <= hw; i++ {
		w[i+hw] = catmullRom(float64(i) / scale)
	}
	return &firFilter{halfWindow: hw, weights: w}
}

// catmullRom is the Keys cubic kernel with a=-0.5.
func catmullRom(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x <= 1:
		return 1.5*x*x*x - 2.5*x*x + 1
	case x < 2:
		return -0.5*x*x*x + 2.5*x*x - 4*x + 2
	default:
		return 0
	}
}

// convolve evaluates the filter at row index x of a row of rowSize
// voxels. it must address index x. Taps reaching past the row ends are
// clamped to the edge values and the result is renormalized, so a
// constant row stays constant.
func (f *firFilter) convolve(it LineIter[float64], x, rowSize int) float64 {
	var sum, wsum float64
	for j := -f.halfWindow; j <= f.halfWindow; j++ {
		w := f.weights[j+f.halfWindow]
		if w == 0 {
			continue
		}
		idx := x + j
		if idx < 0 {
			idx = 0
		} else if idx >= rowSize {
			idx = rowSize - 1
		}
		sum += w * it.At(idx-x)
		wsum += w
	}
	return sum / wsum
}

// filterInplace runs the filter over every grid line along diff,
// writing results back into the source grid. Lines over a dense array
// backend are independent and filtered in parallel; tree backends are
// filtered serially because octree mutation is not thread safe.
func filterInplace(f *firFilter, diff Delta, g Grid[float64]) {
	starts := LineStarts(g, diff)
	line := func(pos Pos) {
		sit, send := beginEnd(g, pos, diff)
		rowSize := send.Sub(sit)

		filtered := make([]float64, rowSize)
		it := sit
		for x := 0; x < rowSize; x++ {
			filtered[x] = f.convolve(it, x, rowSize)
			it = it.Step()
		}

		// Write filtered values back into the source line.
		it = sit
		for x := 0; x < rowSize; x++ {
			it.SetValue(filtered[x])
			it = it.Step()
		}
	}

	if _, dense := g.(*Array[float64]); dense {
		conc.Parallel(len(starts), func(_, i int) {
			line(starts[i])
		})
		return
	}
	for _, pos := range starts {
		line(pos)
	}
}
