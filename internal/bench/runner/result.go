package runner

import (
	"github.com/vradovic/fakebench/internal/bench/metrics"
)

// SampleOutcome is one test-split sample classified at the operating
// threshold, kept for misclassification analysis.
type SampleOutcome struct {
	SampleID    string
	Path        string
	Probability float64
	Label       int
	Predicted   int
	Correct     bool
}

type ModelResult struct {
	JobName   string
	ModelName string

	// Tuned threshold from the validation split, valid when Tuned is true.
	TunedThreshold float64
	Tuned          bool

	// Validation is the report at the tuned threshold on the validation split.
	Validation metrics.Report
	// Default is the test-split report at the fixed default threshold.
	Default metrics.Report
	// TunedTest is the test-split report at the tuned threshold.
	TunedTest metrics.Report

	// Outcomes holds the test split classified at the operating threshold
	// (tuned when tuning ran, default otherwise).
	Outcomes []SampleOutcome

	Latency LatencyStats
	Err     error
}

// JobResult maps modelName -> ModelResult, with ModelOrder preserving the
// spec's model order.
type JobResult struct {
	JobName    string
	ModelOrder []string
	Results    map[string]ModelResult
}

type RunResult struct {
	Jobs   []*JobResult
	Config Config
}
