package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vradovic/fakebench/internal/bench/dataset"
	"github.com/vradovic/fakebench/internal/bench/metrics"
	"github.com/vradovic/fakebench/internal/bench/spec"
	"github.com/vradovic/fakebench/internal/scorer"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg}
}

// RunAll evaluates every job of the spec. A model failure is captured in its
// result row; the run carries on with the remaining models.
func (r *Runner) RunAll(
	ctx context.Context,
	es *spec.EvalSpec,
	scorers map[string]scorer.Scorer,
) (*RunResult, error) {
	rr := &RunResult{Config: r.config}

	for _, job := range es.Jobs {
		valManifest, err := dataset.LoadManifest(job.Manifest.Validation, "validation")
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", job.Name, err)
		}
		testManifest, err := dataset.LoadManifest(job.Manifest.Test, "test")
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", job.Name, err)
		}

		jr, err := r.RunJob(ctx, job, valManifest, testManifest, scorers)
		if err != nil {
			return nil, fmt.Errorf("run job %q: %w", job.Name, err)
		}
		rr.Jobs = append(rr.Jobs, jr)
	}

	return rr, nil
}

func (r *Runner) RunJob(
	ctx context.Context,
	job spec.Job,
	valManifest, testManifest *dataset.Manifest,
	scorers map[string]scorer.Scorer,
) (*JobResult, error) {
	jr := &JobResult{
		JobName: job.Name,
		Results: make(map[string]ModelResult, len(job.Models)),
	}

	for _, name := range job.Models {
		sc, ok := scorers[name]
		if !ok {
			return nil, fmt.Errorf("scorer %q not found", name)
		}

		mr := r.evalModel(ctx, job.Name, sc, valManifest, testManifest)
		jr.ModelOrder = append(jr.ModelOrder, name)
		jr.Results[name] = mr

		if mr.Err != nil {
			slog.Warn("model evaluation failed", "job", job.Name, "model", name, "error", mr.Err)
		}
	}

	return jr, nil
}

func (r *Runner) evalModel(
	ctx context.Context,
	jobName string,
	sc scorer.Scorer,
	valManifest, testManifest *dataset.Manifest,
) ModelResult {
	mr := ModelResult{JobName: jobName, ModelName: sc.Name()}

	valProbs, valLatencies, err := r.scoreSplit(ctx, sc, valManifest.Samples)
	if err != nil {
		mr.Err = fmt.Errorf("score validation split: %w", err)
		return mr
	}
	testProbs, testLatencies, err := r.scoreSplit(ctx, sc, testManifest.Samples)
	if err != nil {
		mr.Err = fmt.Errorf("score test split: %w", err)
		return mr
	}
	mr.Latency = ComputeLatencyStats(append(valLatencies, testLatencies...))

	valSet, err := dataset.New(valProbs, valManifest.Labels())
	if err != nil {
		mr.Err = fmt.Errorf("validation predictions: %w", err)
		return mr
	}
	testSet, err := dataset.New(testProbs, testManifest.Labels())
	if err != nil {
		mr.Err = fmt.Errorf("test predictions: %w", err)
		return mr
	}

	operating := r.config.DefaultThreshold

	if r.config.Tune {
		threshold, valReport, err := metrics.SelectThreshold(valSet)
		if err != nil {
			mr.Err = fmt.Errorf("select threshold: %w", err)
			return mr
		}
		mr.TunedThreshold = threshold
		mr.Tuned = true
		mr.Validation = valReport
		operating = threshold
	}

	mr.Default, err = metrics.Evaluate(testSet, r.config.DefaultThreshold)
	if err != nil {
		mr.Err = fmt.Errorf("evaluate at default threshold: %w", err)
		return mr
	}

	if mr.Tuned {
		mr.TunedTest, err = metrics.Evaluate(testSet, mr.TunedThreshold)
		if err != nil {
			mr.Err = fmt.Errorf("evaluate at tuned threshold: %w", err)
			return mr
		}
	}

	mr.Outcomes = classifyOutcomes(testManifest, testSet, operating)

	return mr
}

// scoreSplit runs the scorer over one split, with optional warmup and
// repeated timed iterations. The probabilities of the last iteration win.
func (r *Runner) scoreSplit(
	ctx context.Context,
	sc scorer.Scorer,
	samples []dataset.Sample,
) ([]float64, []time.Duration, error) {
	for i := 0; i < r.config.WarmupRuns; i++ {
		_, _ = sc.Score(ctx, samples)
	}

	runs := max(r.config.Runs, 1)

	var latencies []time.Duration
	var probs []float64
	var lastErr error

	for i := 0; i < runs; i++ {
		start := time.Now()
		result, err := sc.Score(ctx, samples)
		if err != nil {
			lastErr = err
			continue
		}
		latencies = append(latencies, time.Since(start))
		probs = result
	}

	if probs == nil {
		return nil, nil, lastErr
	}
	if len(probs) != len(samples) {
		return nil, nil, fmt.Errorf("scorer returned %d probabilities for %d samples", len(probs), len(samples))
	}

	return probs, latencies, nil
}

func classifyOutcomes(m *dataset.Manifest, ps dataset.PredictionSet, threshold float64) []SampleOutcome {
	outcomes := make([]SampleOutcome, len(m.Samples))
	for i, s := range m.Samples {
		predicted := dataset.LabelReal
		if ps.Probs[i] >= threshold {
			predicted = dataset.LabelFake
		}
		outcomes[i] = SampleOutcome{
			SampleID:    s.ID,
			Path:        s.Path,
			Probability: ps.Probs[i],
			Label:       s.Label,
			Predicted:   predicted,
			Correct:     predicted == s.Label,
		}
	}
	return outcomes
}
