package metrics

import (
	"sort"

	"github.com/vradovic/fakebench/internal/bench/dataset"
)

// ROCPoint is one operating point of the ROC curve.
type ROCPoint struct {
	FPR float64
	TPR float64
}

// Curve builds the ROC curve by descending the probability ranking, grouping
// tied probabilities into a single step. The curve starts at (0,0) and ends
// at (1,1). Returns nil if either class is missing.
func Curve(ps dataset.PredictionSet) []ROCPoint {
	positives, negatives := ps.Counts()
	if positives == 0 || negatives == 0 {
		return nil
	}

	order := make([]int, ps.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return ps.Probs[order[a]] > ps.Probs[order[b]]
	})

	points := []ROCPoint{{FPR: 0, TPR: 0}}
	var tp, fp int

	for i := 0; i < len(order); {
		j := i
		for j < len(order) && ps.Probs[order[j]] == ps.Probs[order[i]] {
			if ps.Labels[order[j]] == dataset.LabelFake {
				tp++
			} else {
				fp++
			}
			j++
		}
		i = j

		points = append(points, ROCPoint{
			FPR: float64(fp) / float64(negatives),
			TPR: float64(tp) / float64(positives),
		})
	}

	return points
}

// AUC computes the area under the ROC curve by trapezoidal integration over
// the full probability ranking. It does not depend on any chosen threshold.
// Returns 0 when the curve is undefined (a class is missing).
func AUC(ps dataset.PredictionSet) float64 {
	points := Curve(ps)
	if points == nil {
		return 0
	}

	var area float64
	for i := 1; i < len(points); i++ {
		width := points[i].FPR - points[i-1].FPR
		height := (points[i].TPR + points[i-1].TPR) / 2
		area += width * height
	}
	return area
}
