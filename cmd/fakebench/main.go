package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/vradovic/fakebench/internal/bench/report"
	"github.com/vradovic/fakebench/internal/bench/runner"
	"github.com/vradovic/fakebench/internal/bench/spec"
	"github.com/vradovic/fakebench/internal/scorer"
	"github.com/vradovic/fakebench/internal/storage/es"
	"github.com/vradovic/fakebench/internal/storage/pg"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	evalSpec, err := loadSpec(cfg)
	if err != nil {
		slog.Error("Failed to load spec", "error", err)
		os.Exit(1)
	}

	runCfg := runner.Config{
		DefaultThreshold: evalSpec.Thresholds.Default,
		Tune:             !evalSpec.Thresholds.NoTune && !cfg.NoTune,
		WarmupRuns:       cfg.Warmup,
		Runs:             max(cfg.Runs, 1),
	}
	if cfg.Threshold != 0.5 {
		runCfg.DefaultThreshold = cfg.Threshold
	}
	if evalSpec.Runs.Warmup > 0 && cfg.Warmup == 0 {
		runCfg.WarmupRuns = evalSpec.Runs.Warmup
	}
	if evalSpec.Runs.Iterations > 0 && cfg.Runs <= 1 {
		runCfg.Runs = evalSpec.Runs.Iterations
	}

	scorers, cleanup, err := scorer.CreateFromSpec(evalSpec.Models)
	if err != nil {
		slog.Error("Failed to create scorers", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	r := runner.New(runCfg)
	result, err := r.RunAll(ctx, evalSpec, scorers)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}

	rpt := report.Generate(result, evalSpec.Name)
	report.WriteTable(rpt, os.Stdout)

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", cfg.Output)
	}

	if cfg.CSVPath != "" {
		if err := writeCSVFile(rpt, cfg.CSVPath); err != nil {
			slog.Error("Failed to write CSV summary", "error", err)
			os.Exit(1)
		}
		slog.Info("CSV summary written", "path", cfg.CSVPath)
	}

	if cfg.PgConnStr != "" {
		persistRun(ctx, cfg.PgConnStr, rpt)
	}

	if cfg.EsAddresses != "" {
		indexMisclassified(ctx, cfg, rpt, result)
	}
}

func loadSpec(cfg cliConfig) (*spec.EvalSpec, error) {
	if cfg.SpecPath != "" {
		return spec.LoadFromFile(cfg.SpecPath)
	}
	return buildQuickSpec(cfg)
}

// buildQuickSpec assembles a one-job, one-model spec from CLI flags so a
// single prediction dump can be evaluated without writing YAML.
func buildQuickSpec(cfg cliConfig) (*spec.EvalSpec, error) {
	if cfg.ManifestVal == "" || cfg.ManifestTest == "" || cfg.PredsVal == "" || cfg.PredsTest == "" {
		return nil, fmt.Errorf("quick mode requires --manifest-val, --manifest-test, --preds-val and --preds-test")
	}

	return &spec.EvalSpec{
		Name: "quick",
		Models: map[string]spec.Model{
			cfg.ModelName: {
				Type:       "csv",
				Validation: cfg.PredsVal,
				Test:       cfg.PredsTest,
			},
		},
		Jobs: []spec.Job{
			{
				Name: "quick",
				Manifest: spec.ManifestConfig{
					Validation: cfg.ManifestVal,
					Test:       cfg.ManifestTest,
				},
				Models: []string{cfg.ModelName},
			},
		},
		Thresholds: spec.ThresholdConfig{Default: cfg.Threshold},
		Runs:       spec.RunsConfig{Iterations: 1},
	}, nil
}

func writeCSVFile(rpt *report.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteCSV(rpt, f)
}

func persistRun(ctx context.Context, connStr string, rpt *report.Report) {
	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: connStr})
	if err != nil {
		slog.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.NewRunStore(pool).SaveRun(ctx, rpt); err != nil {
		slog.Error("Failed to persist run", "error", err)
		os.Exit(1)
	}
	slog.Info("Run persisted", "run_id", rpt.Meta.RunID)
}

func indexMisclassified(ctx context.Context, cfg cliConfig, rpt *report.Report, result *runner.RunResult) {
	indexer, err := es.NewMisclassIndexer(ctx, es.ClientConfig{
		Addresses: cfg.parseEsAddresses(),
		IndexName: cfg.EsIndex,
	})
	if err != nil {
		slog.Error("Failed to create misclassification indexer", "error", err)
		os.Exit(1)
	}

	if err := indexer.IndexRun(ctx, rpt.Meta.RunID, result); err != nil {
		slog.Error("Failed to index misclassified samples", "error", err)
		os.Exit(1)
	}
}
