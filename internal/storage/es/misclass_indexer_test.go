package es

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vradovic/fakebench/internal/bench/runner"
)

func TestCollectMisclassified(t *testing.T) {
	runID := uuid.New()

	rr := &runner.RunResult{
		Config: runner.Config{DefaultThreshold: 0.5, Tune: true},
		Jobs: []*runner.JobResult{{
			JobName:    "faceforensics",
			ModelOrder: []string{"meso4-finetuned", "xception-serving"},
			Results: map[string]runner.ModelResult{
				"meso4-finetuned": {
					ModelName:      "meso4-finetuned",
					Tuned:          true,
					TunedThreshold: 0.8,
					Outcomes: []runner.SampleOutcome{
						{SampleID: "t1", Probability: 0.9, Label: 1, Predicted: 1, Correct: true},
						{SampleID: "t2", Path: "vids/t2.mp4", Probability: 0.85, Label: 0, Predicted: 1, Correct: false},
						{SampleID: "t3", Probability: 0.4, Label: 1, Predicted: 0, Correct: false},
					},
				},
				"xception-serving": {
					ModelName: "xception-serving",
					Err:       assert.AnError,
				},
			},
		}},
	}

	docs := CollectMisclassified(runID, rr)
	require.Len(t, docs, 2)

	assert.Equal(t, "t2", docs[0].SampleID)
	assert.Equal(t, "vids/t2.mp4", docs[0].Path)
	assert.Equal(t, runID.String(), docs[0].RunID)
	assert.Equal(t, "meso4-finetuned", docs[0].ModelName)
	assert.Equal(t, 0, docs[0].Label)
	assert.Equal(t, 1, docs[0].Predicted)
	assert.InDelta(t, 0.8, docs[0].Threshold, 1e-9)
	assert.False(t, docs[0].IndexedAt.IsZero())

	assert.Equal(t, "t3", docs[1].SampleID)

	// Doc IDs are unique per run, job, model, and sample.
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
	assert.Contains(t, docs[0].ID, runID.String())
}

func TestCollectMisclassified_DefaultThreshold(t *testing.T) {
	rr := &runner.RunResult{
		Config: runner.Config{DefaultThreshold: 0.5},
		Jobs: []*runner.JobResult{{
			JobName:    "j",
			ModelOrder: []string{"m"},
			Results: map[string]runner.ModelResult{
				"m": {
					ModelName: "m",
					Outcomes: []runner.SampleOutcome{
						{SampleID: "a", Probability: 0.6, Label: 0, Predicted: 1, Correct: false},
					},
				},
			},
		}},
	}

	docs := CollectMisclassified(uuid.New(), rr)
	require.Len(t, docs, 1)
	assert.InDelta(t, 0.5, docs[0].Threshold, 1e-9)
}

func TestCollectMisclassified_AllCorrect(t *testing.T) {
	rr := &runner.RunResult{
		Jobs: []*runner.JobResult{{
			JobName:    "j",
			ModelOrder: []string{"m"},
			Results: map[string]runner.ModelResult{
				"m": {
					ModelName: "m",
					Outcomes: []runner.SampleOutcome{
						{SampleID: "a", Correct: true},
					},
				},
			},
		}},
	}

	assert.Empty(t, CollectMisclassified(uuid.New(), rr))
}
