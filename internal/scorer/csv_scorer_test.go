package scorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vradovic/fakebench/internal/bench/dataset"
)

func writePreds(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVScorer(t *testing.T) {
	valPath := writePreds(t, "val.csv", "id,probability\nv1,0.9\nv2,0.1\n")
	testPath := writePreds(t, "test.csv", "id,probability\nt1,0.8\nt2,0.3\n")

	s, err := NewCSVScorer("meso4-baseline", valPath, testPath)
	require.NoError(t, err)
	assert.Equal(t, "meso4-baseline", s.Name())

	t.Run("scores in sample order", func(t *testing.T) {
		probs, err := s.Score(context.Background(), []dataset.Sample{
			{ID: "t2"}, {ID: "v1"}, {ID: "t1"},
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.3, 0.9, 0.8}, probs)
	})

	t.Run("unknown sample", func(t *testing.T) {
		_, err := s.Score(context.Background(), []dataset.Sample{{ID: "missing"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `no prediction for sample "missing"`)
	})
}

func TestCSVScorer_OverlappingFiles(t *testing.T) {
	a := writePreds(t, "a.csv", "id,probability\nx,0.9\n")
	b := writePreds(t, "b.csv", "id,probability\nx,0.1\n")

	_, err := NewCSVScorer("dup", a, b)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "more than one prediction file")
}
