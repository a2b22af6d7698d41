package edep

import (
	"fmt"
	"math/rand/v2"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat/distuv"
)

// PCEDistribution samples a photon collection efficiency from a measured
// (or simulated) efficiency histogram: a bin is chosen with probability
// proportional to its weight and the value is uniform inside the bin.
type PCEDistribution struct {
	weights []float64
	lows    []float64
	widths  []float64
}

func NewPCEDistribution(h *hbook.H1D) (*PCEDistribution, error) {
	if h == nil || h.Len() == 0 {
		return nil, fmt.Errorf("empty PCE histogram")
	}
	d := &PCEDistribution{}
	total := 0.0
	for _, bin := range h.Binning.Bins {
		w := bin.SumW()
		if w < 0 {
			w = 0
		}
		if bin.XMin() < 0 {
			return nil, fmt.Errorf("PCE histogram has negative efficiencies (bin low edge %g)", bin.XMin())
		}
		d.weights = append(d.weights, w)
		d.lows = append(d.lows, bin.XMin())
		d.widths = append(d.widths, bin.XMax()-bin.XMin())
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("PCE histogram has no entries")
	}
	return d, nil
}

func (d *PCEDistribution) Sample(src rand.Source) float64 {
	cat := distuv.NewCategorical(d.weights, src)
	i := int(cat.Rand())
	u := rand.New(src).Float64()
	return d.lows[i] + u*d.widths[i]
}

// Mean of the piecewise-uniform distribution.
func (d *PCEDistribution) Mean() float64 {
	sumW, sum := 0.0, 0.0
	for i, w := range d.weights {
		sumW += w
		sum += w * (d.lows[i] + d.widths[i]/2)
	}
	return sum / sumW
}

// WithDistribution returns a copy of the tables where every operating
// point samples its efficiency from d.
func (t LightTables) WithDistribution(d *PCEDistribution) LightTables {
	var out LightTables
	for m := range t {
		out[m] = make([]OperatingPoint, len(t[m]))
		for k, op := range t[m] {
			op.Distribution = d
			out[m][k] = op
		}
	}
	return out
}
