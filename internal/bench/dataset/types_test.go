package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vradovic/fakebench/internal/apperr"
)

func TestPredictionSet_Validate(t *testing.T) {
	tests := []struct {
		name   string
		probs  []float64
		labels []int
		target any
	}{
		{
			name:   "valid set",
			probs:  []float64{0.9, 0.1, 0.5},
			labels: []int{1, 0, 1},
		},
		{
			name:   "empty set",
			probs:  nil,
			labels: nil,
			target: new(*apperr.EmptyInputError),
		},
		{
			name:   "misaligned lengths",
			probs:  []float64{0.9, 0.1},
			labels: []int{1},
			target: new(*apperr.ValidationError),
		},
		{
			name:   "probability above one",
			probs:  []float64{0.9, 1.2},
			labels: []int{1, 0},
			target: new(*apperr.InvalidInputError),
		},
		{
			name:   "negative probability",
			probs:  []float64{-0.1, 0.2},
			labels: []int{1, 0},
			target: new(*apperr.InvalidInputError),
		},
		{
			name:   "label outside domain",
			probs:  []float64{0.9, 0.2},
			labels: []int{1, 2},
			target: new(*apperr.InvalidInputError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.probs, tt.labels)
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestPredictionSet_Counts(t *testing.T) {
	ps, err := New([]float64{0.9, 0.8, 0.4, 0.2}, []int{1, 1, 0, 0})
	require.NoError(t, err)

	pos, neg := ps.Counts()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 2, neg)
}

func TestManifest_Labels(t *testing.T) {
	m := &Manifest{
		Split: "test",
		Samples: []Sample{
			{ID: "a", Label: 1},
			{ID: "b", Label: 0},
			{ID: "c", Label: 1},
		},
	}
	assert.Equal(t, []int{1, 0, 1}, m.Labels())
}
