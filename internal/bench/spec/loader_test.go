package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSpec = `
name: deepfake-eval
version: "1.0"
models:
  meso4-baseline:
    type: csv
    validation: preds/meso4_base_val.csv
    test: preds/meso4_base_test.csv
  xception-serving:
    type: api
    connection: http://localhost:8501
jobs:
  - name: faceforensics
    manifest:
      validation: data/val_labels.csv
      test: data/test_labels.csv
    models: [meso4-baseline, xception-serving]
thresholds:
  default: 0.5
runs:
  warmup: 1
  iterations: 3
`

func TestParse(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		s, err := Parse([]byte(validSpec))
		require.NoError(t, err)
		assert.Equal(t, "deepfake-eval", s.Name)
		assert.Len(t, s.Models, 2)
		require.Len(t, s.Jobs, 1)
		assert.Equal(t, []string{"meso4-baseline", "xception-serving"}, s.Jobs[0].Models)
		assert.Equal(t, "csv", s.Models["meso4-baseline"].Type)
		assert.Equal(t, 3, s.Runs.Iterations)
		assert.False(t, s.Thresholds.NoTune)
	})

	t.Run("no jobs", func(t *testing.T) {
		_, err := Parse([]byte("models:\n  m:\n    type: api\n    connection: http://x\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no jobs")
	})

	t.Run("unknown model reference", func(t *testing.T) {
		yaml := `
models:
  m1:
    type: api
    connection: http://x
jobs:
  - name: j1
    manifest:
      validation: v.csv
      test: t.csv
    models: [m2]
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `unknown model "m2"`)
	})

	t.Run("csv model without prediction files", func(t *testing.T) {
		yaml := `
models:
  m1:
    type: csv
jobs:
  - name: j1
    manifest:
      validation: v.csv
      test: t.csv
    models: [m1]
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "prediction files")
	})

	t.Run("invalid model type", func(t *testing.T) {
		yaml := `
models:
  m1:
    type: grpc
    connection: localhost:9000
jobs:
  - name: j1
    manifest:
      validation: v.csv
      test: t.csv
    models: [m1]
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid type")
	})

	t.Run("missing manifest", func(t *testing.T) {
		yaml := `
models:
  m1:
    type: api
    connection: http://x
jobs:
  - name: j1
    models: [m1]
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "manifests")
	})

	t.Run("defaults applied", func(t *testing.T) {
		yaml := `
models:
  m1:
    type: api
    connection: http://x
jobs:
  - name: j1
    manifest:
      validation: v.csv
      test: t.csv
    models: [m1]
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.InDelta(t, 0.5, s.Thresholds.Default, 1e-9)
		assert.Equal(t, 1, s.Runs.Iterations)
	})

	t.Run("default threshold out of range", func(t *testing.T) {
		yaml := `
models:
  m1:
    type: api
    connection: http://x
jobs:
  - name: j1
    manifest:
      validation: v.csv
      test: t.csv
    models: [m1]
thresholds:
  default: 1.4
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "outside [0,1]")
	})
}
