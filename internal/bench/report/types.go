package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/vradovic/fakebench/internal/bench/runner"
)

// Report is the externally visible artifact of an evaluation run: ordered
// summary rows per job, plus run metadata. Built once per run, never
// mutated afterwards.
type Report struct {
	Meta   RunMeta      `json:"meta"`
	Jobs   []JobReport  `json:"jobs"`
	Config ReportConfig `json:"config"`
}

type RunMeta struct {
	RunID       uuid.UUID       `json:"run_id"`
	SpecName    string          `json:"spec_name"`
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type JobReport struct {
	JobName string       `json:"job_name"`
	Rows    []SummaryRow `json:"rows"`
}

type ReportConfig struct {
	DefaultThreshold float64 `json:"default_threshold"`
	Tune             bool    `json:"tune"`
}

// Row modes. A model appears once per threshold regime; duplicates by model
// name are expected and kept in order.
const (
	ModeDefault = "default"
	ModeTuned   = "tuned"
)

type SummaryRow struct {
	JobName   string  `json:"job_name"`
	ModelName string  `json:"model_name"`
	Mode      string  `json:"mode"`
	Threshold float64 `json:"threshold"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	AUC       float64 `json:"auc"`
	TP        int     `json:"tp"`
	FP        int     `json:"fp"`
	TN        int     `json:"tn"`
	FN        int     `json:"fn"`
	Samples   int     `json:"samples"`

	Latency runner.LatencyStats `json:"latency"`
	Error   string              `json:"error,omitempty"`
}
