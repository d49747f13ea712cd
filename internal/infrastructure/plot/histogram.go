package plot

import "gonum.org/v1/gonum/floats"

// histogram holds a density histogram: bin center positions and the
// normalized density per bin, so the area under the curve sums to one.
type histogram struct {
	Centers   []float64
	Densities []float64
	BinWidth  float64
}

func computeHistogram(values []float64, bins int) histogram {
	if len(values) == 0 || bins <= 0 {
		return histogram{}
	}

	min := floats.Min(values)
	max := floats.Max(values)
	if max == min {
		// Degenerate sample: spread a unit-wide range around the value
		// so bin width stays positive.
		min -= 0.5
		max += 0.5
	}

	width := (max - min) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	total := float64(len(values))
	h := histogram{
		Centers:   make([]float64, bins),
		Densities: make([]float64, bins),
		BinWidth:  width,
	}
	for i := 0; i < bins; i++ {
		h.Centers[i] = min + (float64(i)+0.5)*width
		h.Densities[i] = counts[i] / (total * width)
	}
	return h
}
