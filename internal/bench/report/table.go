package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Deepfake Detector Evaluation ===\n")
	fmt.Fprintf(tw, "Spec: %s\tRun: %s\n", r.Meta.SpecName, r.Meta.RunID)

	for _, jr := range r.Jobs {
		fmt.Fprintf(tw, "\n--- Job: %s ---\n\n", jr.JobName)
		writeSummaryTable(tw, &jr)
		writeLatencyTable(tw, &jr)
	}

	tw.Flush()
}

func writeSummaryTable(tw *tabwriter.Writer, jr *JobReport) {
	header := []string{"Model", "Mode", "Thresh", "Accuracy", "Precision", "Recall", "F1", "AUC", "TP", "FP", "TN", "FN", "Status"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, row := range jr.Rows {
		if row.Error != "" {
			fmt.Fprintln(tw, strings.Join([]string{
				row.ModelName, "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "ERR",
			}, "\t"))
			continue
		}
		fmt.Fprintln(tw, strings.Join([]string{
			row.ModelName,
			row.Mode,
			fmt.Sprintf("%.4f", row.Threshold),
			fmt.Sprintf("%.4f", row.Accuracy),
			fmt.Sprintf("%.4f", row.Precision),
			fmt.Sprintf("%.4f", row.Recall),
			fmt.Sprintf("%.4f", row.F1),
			fmt.Sprintf("%.4f", row.AUC),
			fmt.Sprintf("%d", row.TP),
			fmt.Sprintf("%d", row.FP),
			fmt.Sprintf("%d", row.TN),
			fmt.Sprintf("%d", row.FN),
			"OK",
		}, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, jr *JobReport) {
	fmt.Fprintf(tw, "Scoring Latency\n\n")

	header := []string{"Model", "Min", "p50", "p95", "p99", "Max", "Mean", "Stddev", "Samples"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	seen := make(map[string]bool)
	for _, row := range jr.Rows {
		// A tuned model contributes two rows with identical latency stats.
		if seen[row.ModelName] || row.Latency.IsZero() {
			continue
		}
		seen[row.ModelName] = true

		s := row.Latency
		fmt.Fprintln(tw, strings.Join([]string{
			row.ModelName,
			fmtDuration(s.Min),
			fmtDuration(s.P50()),
			fmtDuration(s.P95()),
			fmtDuration(s.P99()),
			fmtDuration(s.Max),
			fmtDuration(s.Mean),
			fmtDuration(s.Stddev),
			fmt.Sprintf("%d", s.SampleCount),
		}, "\t"))
	}

	fmt.Fprintln(tw)
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
