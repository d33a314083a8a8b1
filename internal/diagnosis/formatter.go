package diagnosis

import (
	"math"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/taxonomy"
)

// Format maps a raw probability vector, index-aligned with the class
// table, onto a Result. The first occurrence wins a tied maximum, which
// keeps label selection deterministic. Timing and image metadata are
// filled in by the caller.
func Format(probs []float32) (*Result, error) {
	if len(probs) != taxonomy.Count() {
		return nil, &taxonomy.MismatchError{Want: taxonomy.Count(), Got: len(probs)}
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	// Each percentage is rounded on its own and the distribution is not
	// renormalized afterward, so the displayed total can drift slightly
	// from 100.
	classes := taxonomy.Classes()
	dist := make(map[string]float64, len(probs))
	for i, p := range probs {
		dist[classes[i].Name] = round2(float64(p) * 100)
	}

	selected := classes[best]
	return &Result{
		PredictedClass: selected.Name,
		Confidence:     round2(float64(probs[best]) * 100),
		Probabilities:  dist,
		ClassInfo:      selected.Info,
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
