package metrics

import (
	"github.com/vradovic/fakebench/internal/apperr"
	"github.com/vradovic/fakebench/internal/bench/dataset"
)

// ConfusionMatrix holds the 2x2 outcome counts at a fixed threshold.
// Fake (label 1) is the positive class.
type ConfusionMatrix struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

func (m ConfusionMatrix) Total() int {
	return m.TP + m.FP + m.TN + m.FN
}

func (m ConfusionMatrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return float64(m.TP+m.TN) / float64(total)
}

// Precision is defined as 0 when nothing was predicted positive.
func (m ConfusionMatrix) Precision() float64 {
	if m.TP+m.FP == 0 {
		return 0
	}
	return float64(m.TP) / float64(m.TP+m.FP)
}

// Recall is defined as 0 when there are no positive samples.
func (m ConfusionMatrix) Recall() float64 {
	if m.TP+m.FN == 0 {
		return 0
	}
	return float64(m.TP) / float64(m.TP+m.FN)
}

func (m ConfusionMatrix) F1() float64 {
	p := m.Precision()
	r := m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// TPR is the true-positive rate (sensitivity), equal to recall.
func (m ConfusionMatrix) TPR() float64 {
	return m.Recall()
}

// FPR is the false-positive rate, 0 when there are no negative samples.
func (m ConfusionMatrix) FPR() float64 {
	if m.FP+m.TN == 0 {
		return 0
	}
	return float64(m.FP) / float64(m.FP+m.TN)
}

// Confusion classifies every sample as positive iff probability >= threshold
// and counts the outcomes.
func Confusion(ps dataset.PredictionSet, threshold float64) ConfusionMatrix {
	var m ConfusionMatrix
	for i, p := range ps.Probs {
		predictedFake := p >= threshold
		actualFake := ps.Labels[i] == dataset.LabelFake

		switch {
		case predictedFake && actualFake:
			m.TP++
		case predictedFake && !actualFake:
			m.FP++
		case !predictedFake && actualFake:
			m.FN++
		default:
			m.TN++
		}
	}
	return m
}

// Report is the metric record derived from one prediction set and one
// threshold. AUC is threshold-independent: it comes from the full
// probability ranking.
type Report struct {
	Threshold float64         `json:"threshold"`
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	AUC       float64         `json:"auc"`
	Confusion ConfusionMatrix `json:"confusion"`
	Samples   int             `json:"samples"`
}

// Evaluate derives the metric report for a prediction set at a fixed
// threshold. Pure: identical inputs always yield an identical report.
func Evaluate(ps dataset.PredictionSet, threshold float64) (Report, error) {
	if err := ps.Validate(); err != nil {
		return Report{}, err
	}
	if threshold < 0 || threshold > 1 {
		return Report{}, apperr.NewValidation("threshold must be in [0,1]")
	}

	m := Confusion(ps, threshold)

	return Report{
		Threshold: threshold,
		Accuracy:  m.Accuracy(),
		Precision: m.Precision(),
		Recall:    m.Recall(),
		F1:        m.F1(),
		AUC:       AUC(ps),
		Confusion: m,
		Samples:   ps.Len(),
	}, nil
}
