package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/vradovic/fakebench/internal/bench/metrics"
	"github.com/vradovic/fakebench/internal/bench/runner"
)

// Generate assembles the summary table from a run result. Row order follows
// the spec's job and model order; a tuned model yields two rows (default
// threshold first, tuned second) and a failed model yields one error row.
func Generate(rr *runner.RunResult, specName string) *Report {
	r := &Report{
		Meta: RunMeta{
			RunID:       uuid.New(),
			SpecName:    specName,
			Version:     "1",
			Timestamp:   time.Now().UTC(),
			Environment: NewEnvironmentInfo(),
		},
		Config: ReportConfig{
			DefaultThreshold: rr.Config.DefaultThreshold,
			Tune:             rr.Config.Tune,
		},
	}

	for _, jr := range rr.Jobs {
		job := JobReport{JobName: jr.JobName}

		for _, name := range jr.ModelOrder {
			mr := jr.Results[name]

			if mr.Err != nil {
				job.Rows = append(job.Rows, SummaryRow{
					JobName:   jr.JobName,
					ModelName: name,
					Error:     mr.Err.Error(),
				})
				continue
			}

			job.Rows = append(job.Rows, metricRow(jr.JobName, name, ModeDefault, mr.Default, mr.Latency))
			if mr.Tuned {
				job.Rows = append(job.Rows, metricRow(jr.JobName, name, ModeTuned, mr.TunedTest, mr.Latency))
			}
		}

		r.Jobs = append(r.Jobs, job)
	}

	return r
}

func metricRow(jobName, modelName, mode string, m metrics.Report, latency runner.LatencyStats) SummaryRow {
	return SummaryRow{
		JobName:   jobName,
		ModelName: modelName,
		Mode:      mode,
		Threshold: m.Threshold,
		Accuracy:  m.Accuracy,
		Precision: m.Precision,
		Recall:    m.Recall,
		F1:        m.F1,
		AUC:       m.AUC,
		TP:        m.Confusion.TP,
		FP:        m.Confusion.FP,
		TN:        m.Confusion.TN,
		FN:        m.Confusion.FN,
		Samples:   m.Samples,
		Latency:   latency,
	}
}

// Rows flattens all jobs' rows in order, the shape a renderer must honor.
func (r *Report) Rows() []SummaryRow {
	var rows []SummaryRow
	for _, job := range r.Jobs {
		rows = append(rows, job.Rows...)
	}
	return rows
}
