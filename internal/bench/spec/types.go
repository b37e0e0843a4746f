package spec

// EvalSpec describes one evaluation run: which detector models to score,
// which labeled splits to score them on, and how thresholds are chosen.
type EvalSpec struct {
	Name       string           `yaml:"name"`
	Version    string           `yaml:"version"`
	Models     map[string]Model `yaml:"models"`
	Jobs       []Job            `yaml:"jobs"`
	Thresholds ThresholdConfig  `yaml:"thresholds"`
	Runs       RunsConfig       `yaml:"runs"`
}

// Model names a scorer source. A csv model points at per-split probability
// dumps exported by the training pipeline; an api model points at a serving
// endpoint. Stage variants (baseline vs fine-tuned) are separate entries,
// e.g. "meso4-baseline" and "meso4-finetuned".
type Model struct {
	Type       string `yaml:"type"` // csv | api
	Connection string `yaml:"connection,omitempty"`
	Validation string `yaml:"validation,omitempty"`
	Test       string `yaml:"test,omitempty"`
}

type Job struct {
	Name     string         `yaml:"name"`
	Manifest ManifestConfig `yaml:"manifest"`
	Models   []string       `yaml:"models"`
}

type ManifestConfig struct {
	Validation string `yaml:"validation"`
	Test       string `yaml:"test"`
}

type ThresholdConfig struct {
	Default float64 `yaml:"default"`
	NoTune  bool    `yaml:"no_tune"`
}

type RunsConfig struct {
	Warmup     int `yaml:"warmup"`
	Iterations int `yaml:"iterations"`
}
