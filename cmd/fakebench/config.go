package main

import (
	"flag"
	"strings"

	"github.com/vradovic/fakebench/pkg/stringsutil"
)

type cliConfig struct {
	SpecPath string

	// Quick single-model mode.
	ManifestVal  string
	ManifestTest string
	PredsVal     string
	PredsTest    string
	ModelName    string

	Threshold float64
	NoTune    bool
	Warmup    int
	Runs      int

	Output  string
	CSVPath string

	PgConnStr   string
	EsAddresses string
	EsIndex     string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to eval spec YAML (multi-job mode)")
	flag.StringVar(&cfg.ManifestVal, "manifest-val", "", "Validation manifest CSV (quick single-model mode)")
	flag.StringVar(&cfg.ManifestTest, "manifest-test", "", "Test manifest CSV (quick single-model mode)")
	flag.StringVar(&cfg.PredsVal, "preds-val", "", "Validation prediction CSV (quick single-model mode)")
	flag.StringVar(&cfg.PredsTest, "preds-test", "", "Test prediction CSV (quick single-model mode)")
	flag.StringVar(&cfg.ModelName, "model", "model", "Model name for quick mode rows")
	flag.Float64Var(&cfg.Threshold, "threshold", 0.5, "Default classification threshold")
	flag.BoolVar(&cfg.NoTune, "no-tune", false, "Skip threshold tuning on the validation split")
	flag.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup scoring passes before measurement")
	flag.IntVar(&cfg.Runs, "runs", 1, "Number of timed scoring iterations")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	flag.StringVar(&cfg.CSVPath, "csv", "", "Output path for the CSV summary table")
	flag.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string for run persistence")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "", "Elasticsearch addresses for misclassification indexing, comma-separated")
	flag.StringVar(&cfg.EsIndex, "es-index", "fakebench-misclassified", "Elasticsearch index name")

	flag.Parse()
	return cfg
}

func (c cliConfig) parseEsAddresses() []string {
	parts := strings.Split(c.EsAddresses, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return stringsutil.RemoveEmptyStrings(parts)
}
