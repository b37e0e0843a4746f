package scorer

import (
	"context"

	"github.com/vradovic/fakebench/internal/bench/dataset"
)

// Scorer is the external model collaborator: it turns a batch of samples
// into per-sample fake probabilities, index-aligned with the input.
// Everything behind it (network weights, inference runtime) is out of scope.
type Scorer interface {
	Score(ctx context.Context, samples []dataset.Sample) ([]float64, error)
	Name() string
	Close() error
}
