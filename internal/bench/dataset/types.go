package dataset

import "github.com/vradovic/fakebench/internal/apperr"

const (
	LabelReal = 0
	LabelFake = 1
)

// Sample is one entry of a labeled split manifest. Label is ground truth:
// 1 for fake (positive class), 0 for real.
type Sample struct {
	ID    string
	Path  string
	Label int
}

// Manifest is an ordered labeled split (validation or test). Prediction sets
// built from it keep the manifest order.
type Manifest struct {
	Split   string
	Samples []Sample
}

func (m *Manifest) Labels() []int {
	labels := make([]int, len(m.Samples))
	for i, s := range m.Samples {
		labels[i] = s.Label
	}
	return labels
}

// PredictionSet pairs per-sample probabilities with ground-truth labels for
// one model on one split. Probs and Labels are index-aligned and equal in
// count. Treated as immutable once built.
type PredictionSet struct {
	Probs  []float64
	Labels []int
}

// New builds a validated prediction set.
func New(probs []float64, labels []int) (PredictionSet, error) {
	ps := PredictionSet{Probs: probs, Labels: labels}
	if err := ps.Validate(); err != nil {
		return PredictionSet{}, err
	}
	return ps, nil
}

func (ps PredictionSet) Len() int {
	return len(ps.Probs)
}

// Counts returns the number of positive and negative ground-truth labels.
func (ps PredictionSet) Counts() (positives, negatives int) {
	for _, l := range ps.Labels {
		if l == LabelFake {
			positives++
		} else {
			negatives++
		}
	}
	return positives, negatives
}

// Validate fails fast on the first out-of-range probability or label.
func (ps PredictionSet) Validate() error {
	if len(ps.Probs) == 0 {
		return apperr.NewEmptyInput("prediction set has no samples")
	}
	if len(ps.Probs) != len(ps.Labels) {
		return apperr.NewValidation("probabilities and labels differ in count")
	}
	for i, p := range ps.Probs {
		if p < 0 || p > 1 {
			return apperr.NewInvalidInput(i, "probability", p)
		}
	}
	for i, l := range ps.Labels {
		if l != LabelReal && l != LabelFake {
			return apperr.NewInvalidInput(i, "label", float64(l))
		}
	}
	return nil
}
