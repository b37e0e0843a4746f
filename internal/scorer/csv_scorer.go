package scorer

import (
	"context"
	"fmt"

	"github.com/vradovic/fakebench/internal/bench/dataset"
)

// CSVScorer serves probabilities from prediction dumps the training pipeline
// exported per split. This is the usual offline path: no model is loaded,
// scoring is a lookup by sample id.
type CSVScorer struct {
	name  string
	preds map[string]float64
}

func NewCSVScorer(name string, predictionFiles ...string) (*CSVScorer, error) {
	preds := make(map[string]float64)

	for _, path := range predictionFiles {
		filePreds, err := dataset.LoadPredictions(path)
		if err != nil {
			return nil, fmt.Errorf("scorer %q: %w", name, err)
		}
		for id, p := range filePreds {
			if _, ok := preds[id]; ok {
				return nil, fmt.Errorf("scorer %q: sample %q appears in more than one prediction file", name, id)
			}
			preds[id] = p
		}
	}

	return &CSVScorer{name: name, preds: preds}, nil
}

func (s *CSVScorer) Score(_ context.Context, samples []dataset.Sample) ([]float64, error) {
	probs := make([]float64, len(samples))
	for i, sample := range samples {
		p, ok := s.preds[sample.ID]
		if !ok {
			return nil, fmt.Errorf("scorer %q has no prediction for sample %q", s.name, sample.ID)
		}
		probs[i] = p
	}
	return probs, nil
}

func (s *CSVScorer) Name() string { return s.name }
func (s *CSVScorer) Close() error { return nil }
