package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV emits one record per summary row, in report order. Failed models
// carry their error message and empty metric columns.
func WriteCSV(r *Report, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{
		"job_name", "model_name", "mode", "threshold",
		"accuracy", "precision", "recall", "f1", "auc",
		"tp", "fp", "tn", "fn", "samples", "error",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range r.Rows() {
		record := []string{row.JobName, row.ModelName, row.Mode}
		if row.Error != "" {
			record = append(record, "", "", "", "", "", "", "", "", "", "", "", row.Error)
		} else {
			record = append(record,
				fmtFloat(row.Threshold),
				fmtFloat(row.Accuracy),
				fmtFloat(row.Precision),
				fmtFloat(row.Recall),
				fmtFloat(row.F1),
				fmtFloat(row.AUC),
				strconv.Itoa(row.TP),
				strconv.Itoa(row.FP),
				strconv.Itoa(row.TN),
				strconv.Itoa(row.FN),
				strconv.Itoa(row.Samples),
				"",
			)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
