package metrics

import (
	"sort"

	"github.com/vradovic/fakebench/internal/apperr"
	"github.com/vradovic/fakebench/internal/bench/dataset"
)

// SelectThreshold sweeps the distinct probability values present in the set
// as candidate cut-offs and picks the one maximizing Youden's J
// (sensitivity - false-positive rate). Ties break to the smallest threshold,
// the operating point closest to the top-left of the ROC curve.
//
// The set must contain at least one positive and one negative label,
// otherwise the rates behind J are undefined.
func SelectThreshold(ps dataset.PredictionSet) (float64, Report, error) {
	if err := ps.Validate(); err != nil {
		return 0, Report{}, err
	}

	positives, negatives := ps.Counts()
	if positives == 0 || negatives == 0 {
		return 0, Report{}, apperr.NewInsufficientData(positives, negatives)
	}

	candidates := distinctProbs(ps.Probs)

	best := candidates[0]
	bestJ := youden(ps, best)

	for _, t := range candidates[1:] {
		if j := youden(ps, t); j > bestJ {
			best = t
			bestJ = j
		}
	}

	report, err := Evaluate(ps, best)
	if err != nil {
		return 0, Report{}, err
	}

	return best, report, nil
}

func youden(ps dataset.PredictionSet, threshold float64) float64 {
	m := Confusion(ps, threshold)
	return m.TPR() - m.FPR()
}

// distinctProbs returns the unique probability values in ascending order, so
// the sweep visits smaller candidates first and strict improvement keeps the
// smallest threshold on ties.
func distinctProbs(probs []float64) []float64 {
	sorted := make([]float64, len(probs))
	copy(sorted, probs)
	sort.Float64s(sorted)

	distinct := sorted[:1]
	for _, p := range sorted[1:] {
		if p != distinct[len(distinct)-1] {
			distinct = append(distinct, p)
		}
	}
	return distinct
}
